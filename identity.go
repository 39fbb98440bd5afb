package balcao

// Identity supplies the optional identifier of the current actor, used for
// audit stamping and authorship injection. Running without an identity is
// legal: audit entries simply omit the actor and no authorship field is
// injected.
type Identity interface {
	ActorID() (string, bool)
}

// Anonymous is the identity of a session without a signed-in actor.
type Anonymous struct{}

func (Anonymous) ActorID() (string, bool) { return "", false }

// StaticIdentity is a fixed actor id, as used by the CLI and by tests.
type StaticIdentity string

func (s StaticIdentity) ActorID() (string, bool) { return string(s), s != "" }
