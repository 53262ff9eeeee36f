package renderer

import (
	"github.com/unrolled/render"
)

func New(development bool) *render.Render {
	return render.New(render.Options{
		IndentJSON:    development,
		IsDevelopment: development,
	})
}
