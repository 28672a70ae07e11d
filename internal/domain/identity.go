package domain

import "fmt"

// IdentitySource records which configuration scope answered the identity
// lookup. Review edits always target the repo-local scope regardless of
// where the original value came from.
type IdentitySource string

const (
	IdentityFromRepo     IdentitySource = "repo"
	IdentityFromGlobal   IdentitySource = "global"
	IdentityFromPrompt   IdentitySource = "prompted"
	IdentityUnresolvable IdentitySource = "none"
)

// Identity is the commit author/committer identity for a run.
type Identity struct {
	Name   string
	Email  string
	Source IdentitySource
}

// Empty reports whether neither name nor email is set.
func (i Identity) Empty() bool {
	return i.Name == "" && i.Email == ""
}

// String renders the conventional "Name <email>" form.
func (i Identity) String() string {
	return fmt.Sprintf("%s <%s>", i.Name, i.Email)
}

// ConfigScope selects which git configuration store a read or write targets.
// The scope is always passed explicitly; identity edits and AI settings are
// only ever written with ScopeLocal.
type ConfigScope string

const (
	ScopeLocal  ConfigScope = "local"
	ScopeGlobal ConfigScope = "global"
)

// Repo-local configuration keys for the AI tier.
const (
	ConfigKeyModel   = "gup.model"
	ConfigKeyTimeout = "gup.timeout"
)
