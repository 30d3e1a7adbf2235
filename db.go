package mailward

type Database interface {
	Open() error
	Close() error
}
