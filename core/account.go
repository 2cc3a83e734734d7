package core

// Account is an opaque account identity. The caller-side collaborator is
// responsible for authentication and address resolution; the ledger and the
// exchange engine only ever compare accounts for equality and use them as
// storage keys.
type Account string

// Empty empty account
func (a Account) Empty() bool {
	return a == ""
}
