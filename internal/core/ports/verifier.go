package ports

// OutputVerifier checks that distributable outputs exist.
//
//go:generate go run go.uber.org/mock/mockgen -source=verifier.go -destination=mocks/mock_verifier.go -package=mocks
type OutputVerifier interface {
	// VerifyOutputs reports whether every path exists, returning the first missing one.
	VerifyOutputs(paths []string) (missing string, ok bool, err error)
}
