package generator

import "errors"

var (
	// ErrNoPackage is returned when a directory has no buildable Go files.
	ErrNoPackage = errors.New("no Go package found")

	// ErrMixedPackages is returned when the Go files in a directory declare
	// more than one package.
	ErrMixedPackages = errors.New("multiple packages in directory")

	// ErrInvalidOutput is returned when Config.Output isn't a plain .go file
	// name. The output always lives in the package directory, otherwise the
	// package would never see the generated methods.
	ErrInvalidOutput = errors.New("output must be a .go file name without a directory")

	// ErrTypeNotFound is returned when a type requested by name isn't declared
	// in the package.
	ErrTypeNotFound = errors.New("type not found")

	// ErrAliasType is returned for type aliases, which can't have methods
	// declared on them.
	ErrAliasType = errors.New("cannot generate methods for a type alias")

	// ErrMissingPredicate is returned (only with Config.Check) when a target
	// type has no IsEmpty method.
	ErrMissingPredicate = errors.New("type has no IsEmpty method")

	// ErrBadPredicate is returned (only with Config.Check) when IsEmpty has
	// the wrong signature; it must be IsEmpty() bool.
	ErrBadPredicate = errors.New("IsEmpty must take no arguments and return bool")

	// ErrMethodExists is returned (only with Config.Check) when the type
	// already declares IfEmpty.
	ErrMethodExists = errors.New("type already declares IfEmpty")

	// ErrInvalidReceiver is returned (only with Config.Check) for interface
	// and pointer types, which can't be method receivers.
	ErrInvalidReceiver = errors.New("type cannot have methods")
)
