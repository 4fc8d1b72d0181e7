package repositories

import "errors"

// ErrNotFound is returned when a referenced document does not exist.
// Unparseable ObjectIDs are treated the same way, since an id that cannot
// exist in a collection is indistinguishable from one that is absent.
var ErrNotFound = errors.New("not found")

// ErrAlreadyExists is returned when inserting an edge record that violates a
// unique index. Duplicate-key inspection happens only inside the repositories;
// handlers decide whether the conflict is a 409 or an idempotent success.
var ErrAlreadyExists = errors.New("already exists")
