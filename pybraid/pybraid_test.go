package pybraid

import (
	"testing"

	"github.com/go-python/gpython/py"
	"github.com/stretchr/testify/require"

	_ "github.com/go-python/gpython/stdlib"
)

func TestScripts(t *testing.T) {
	for _, script := range []string{"testdata/basics.py"} {
		ctx := py.NewContext(py.DefaultContextOpts())
		_, err := py.RunFile(ctx, script, py.CompileOpts{}, nil)
		if err != nil {
			py.TracebackDump(err)
		}
		ctx.Close()
		<-ctx.Done()
		require.NoError(t, err, script)
	}
}
