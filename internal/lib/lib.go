// Package lib holds infrastructure that sits beside the layers rather
// than inside one of them.
//
// cache wraps the Redis client and the list cache used by the services;
// job runs background tasks (cache warm-up) on Asynq over the same Redis.
package lib
