// Package auth implements the password gate guarding the journal.
//
// A Gate moves through Uninitialized, Locked, Unlocked, and LockedOut states.
// Secrets are stored as bcrypt hashes via the store's CredentialStore; the
// plaintext never touches disk. Lockout after the attempt budget is exhausted
// is terminal for the session. There is no recovery path for a forgotten
// password short of removing the credential row from the database by hand.
package auth
