package form

// StructuralError rejects a schema or field definition that violates the
// structural rules. The whole operation fails; nothing is partially applied.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string { return e.Reason }

// ValidationError rejects a submission: the payload is not a proper
// sequence, or the form is not accepting submissions.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// NotFoundError covers both a missing id and an existing form the actor
// may not touch. Callers surface the two identically so foreign resources
// are indistinguishable from nonexistent ones.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

// AuthorizationError rejects an operation that requires an authenticated
// actor.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string { return e.Reason }
