package ui

import(
	"context"
	"net/http"

	"github.com/skypies/util/gcp/ds"
	"github.com/skypies/util/widget"

	"github.com/skypies/formation/fstore"
)

// Convenience combo for the common case.
func WithFormationDBCtx(f widget.CtxMaker, fh FormationHandler) widget.BaseHandler {
	return widget.WithCtx(f, WithFormationDB(fh))
}

// Rather than stash/retrieve a DB object from the context, we just pass it
// directly to a new handler type, used throughout ui/.
type FormationHandler func(fstore.FormationDB, http.ResponseWriter, *http.Request)

func WithFormationDB(fh FormationHandler) widget.ContextHandler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) {
		p := ds.GetProviderOrPanic(ctx) // PANICs if not found
		db := fstore.New(ctx, p)
		r.ParseForm()
		fh(db, w, r)
	}
}
