// Package pathfinding finds the shortest path between the start and goal markers of a
// maze.Grid using breadth-first search.
//
// It exposes two entry points:
//
//   - Run: search and return the path, notifying an observer after every dequeued cell.
//   - Search: the same search, also reporting how many cells were explored and
//     honouring context cancellation between steps.
//
// The observer is the only way to watch a search in progress. It is called
// synchronously, so a renderer may pace the animation by blocking inside it without the
// search itself ever depending on time.
package pathfinding
