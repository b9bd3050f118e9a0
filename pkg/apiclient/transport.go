package apiclient

import "net/http"

// Doer abstrae el transporte HTTP. En producción es *http.Client;
// en modo mock se inyecta un transporte de fixtures.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}
