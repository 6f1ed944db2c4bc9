package interfaces

//go:generate mockgen -package=mock -source=request.go -destination=mock/request.go

// Request is the field-reflection capability a cache policy needs from an RPC request.
type Request interface {
	// HasField reports whether the request carries a value for the field
	HasField(name string) bool
	// HasAndPresent reports whether the field is carried and is not its type's empty value
	HasAndPresent(name string) bool
	// ValueOf returns the field value used to build cache key fragments
	ValueOf(name string) any
}

// FieldDeclarer exposes the fields declared by a request message type
type FieldDeclarer interface {
	DeclaredFields() []string
}
