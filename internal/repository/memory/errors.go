package memory

import "errors"

// Constraint violations mirror the checks the SQL schema enforces.
var (
	errDuplicateKey        = errors.New("memory: duplicate key")
	errCheckViolation      = errors.New("memory: check constraint violated")
	errForeignKeyViolation = errors.New("memory: foreign key violated")
)
