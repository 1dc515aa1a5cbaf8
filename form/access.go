package form

// Actor is the resolved identity behind a request. Authentication itself
// happens elsewhere; the engine only consumes the result.
type Actor struct {
	ID            string
	Authenticated bool
}

// Anonymous is the actor for unauthenticated requests.
var Anonymous = Actor{}

// CanRead: any actor may read a form by id — it has to render for
// anonymous submitters.
func CanRead(Schema, Actor) bool { return true }

// CanList: listing requires authentication; the result set is scoped to
// the actor's own forms by the caller.
func CanList(a Actor) bool { return a.Authenticated }

// CanMutate covers update, delete, duplicate and reading the response
// collection. Callers must surface a false result exactly like a missing
// form so foreign forms do not leak their existence.
func CanMutate(s Schema, a Actor) bool {
	return a.Authenticated && s.OwnerID == a.ID
}

// CanSubmit: submissions are always anonymous-eligible and gated only by
// the active flag.
func CanSubmit(s Schema) bool { return s.IsActive }
