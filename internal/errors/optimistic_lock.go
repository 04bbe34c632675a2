package errors

var ErrOptimisticLock = newException(KindConflict, "task was modified concurrently, reload and retry")
