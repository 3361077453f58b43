package entity

// Credentials is the record persisted to credentials.conf. Stored in
// plaintext; restricting the file to its owner is the only protection, which
// mirrors what the check-in script expects to read.
type Credentials struct {
	Username   string
	Password   string
	ServerChan string
	Base       string
}
