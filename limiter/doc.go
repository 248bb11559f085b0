// Package limiter provides a counting-semaphore bound on concurrent
// invocations of external collaborators such as model completion and
// embedding calls. Each wrapped collaborator gets its own Limiter, so
// embedding traffic never starves completion traffic and vice versa.
package limiter
