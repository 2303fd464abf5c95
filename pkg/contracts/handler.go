package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every service handler so the application can
// mount its routes on the shared router.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
