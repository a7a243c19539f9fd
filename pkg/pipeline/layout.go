package pipeline

import (
	"github.com/google/uuid"

	"github.com/matzehuels/smartview/pkg/assemble"
	"github.com/matzehuels/smartview/pkg/errors"
	"github.com/matzehuels/smartview/pkg/path"
	"github.com/matzehuels/smartview/pkg/semantic"
	"github.com/matzehuels/smartview/pkg/view"
)

// Generate folds paths into a semantic DAG and lays it out with the strategy
// named by opts.Settings.LayoutType. A view without an id gets a random one.
//
// Any failure is returned as RENDER_FAILED "unable to render" wrapping the
// precise cause.
func Generate(paths []path.Path, opts Options) (view.View, error) {
	v, err := generate(paths, opts)
	if err != nil {
		return view.View{}, errors.Wrap(errors.ErrCodeRenderFailed, err, "unable to render")
	}
	return v, nil
}

func generate(paths []path.Path, opts Options) (view.View, error) {
	if err := opts.ValidateForLayout(); err != nil {
		return view.View{}, err
	}
	if len(paths) == 0 {
		return view.View{}, errors.New(errors.ErrCodeInvalidInput, "no paths")
	}
	e, err := semantic.Build(paths)
	if err != nil {
		return view.View{}, err
	}
	if opts.ViewID == "" {
		opts.ViewID = uuid.NewString()
	}
	opts.Logger.Debug("built semantic model", "elements", e.Len(), "leaves", len(e.FindLeaves()))
	return assemble.Assemble(e, assemble.Options{
		Settings: opts.Settings,
		IDs:      opts.IDs,
		ViewID:   opts.ViewID,
		ViewName: opts.ViewName,
	})
}
