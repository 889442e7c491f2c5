package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"log/slog"
	"os"
	"runtime"

	rawgl "github.com/go-gl/gl/v4.1-core/gl"
	glstate "github.com/richinsley/goglscope/gl"
	glcontext "github.com/richinsley/goglscope/glcontext"
	glfwcontext "github.com/richinsley/goglscope/glfwcontext"
	options "github.com/richinsley/goglscope/options"
	program "github.com/richinsley/goglscope/program"
)

const vertexShaderSource = `#version 410 core
in vec2 in_vert;
out vec2 frag_uv;
void main() {
    frag_uv = vec2(in_vert.x * 0.5 + 0.5, 0.5 - in_vert.y * 0.5);
    gl_Position = vec4(in_vert, 0.0, 1.0);
}
`

const fragmentShaderSource = `#version 410 core
in vec2 frag_uv;
out vec4 out_color;
uniform sampler2D u_texture;
void main() {
    out_color = texture(u_texture, frag_uv);
}
`

func init() {
	runtime.LockOSThread()
}

// checkerboard builds RGBA pixels for the fallback texture.
func checkerboard(size, cell int) []byte {
	pix := make([]byte, size*size*4)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			i := (y*size + x) * 4
			if (x/cell+y/cell)%2 == 0 {
				pix[i], pix[i+1], pix[i+2] = 230, 230, 230
			} else {
				pix[i], pix[i+1], pix[i+2] = 40, 40, 40
			}
			pix[i+3] = 255
		}
	}
	return pix
}

func loadTexture(g *glstate.GL, opts *options.Options) (*glstate.Texture, error) {
	if *opts.Image == "" {
		return glstate.NewTextureFromBytes(g, 256, 256, glstate.TypeByte, glstate.FormatRGBA, checkerboard(256, 32))
	}

	f, err := os.Open(*opts.Image)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	b := img.Bounds()
	return glstate.NewTextureFromImage(g, b.Dx(), b.Dy(), img)
}

func run(opts *options.Options) error {
	if err := glfwcontext.InitGraphics(); err != nil {
		return fmt.Errorf("failed to initialize glfw: %w", err)
	}
	defer glfwcontext.TerminateGraphics()

	win, err := glfwcontext.New(*opts.Width, *opts.Height, "goglscope", true)
	if err != nil {
		return fmt.Errorf("failed to create window: %w", err)
	}
	defer win.Shutdown()
	win.MakeCurrent()

	ctx, err := glcontext.New()
	if err != nil {
		return err
	}
	g := glstate.New(ctx)

	tex, err := loadTexture(g, opts)
	if err != nil {
		return err
	}
	defer tex.Release()

	if *opts.Filter == "nearest" {
		tex.SetFilter(glstate.FilterNearest)
	}

	quadVertices := []float32{
		-1, -1, 1, -1, -1, 1,
		1, -1, 1, 1, -1, 1,
	}
	quad, err := glstate.NewArrayBuffer(g, glstate.Float32Bytes(quadVertices), glstate.UsageStatic)
	if err != nil {
		return err
	}
	defer quad.Release()

	prog, err := program.New(vertexShaderSource, fragmentShaderSource, map[string]int32{"in_vert": 2})
	if err != nil {
		return err
	}
	defer prog.Delete()

	// Core profile requires a VAO; the attribute pointer reads from
	// whichever buffer the scope has bound.
	var vao uint32
	rawgl.GenVertexArrays(1, &vao)
	rawgl.BindVertexArray(vao)
	defer rawgl.DeleteVertexArrays(1, &vao)

	pos, _ := prog.Attribute("in_vert")
	g.Apply(glstate.Settings().ArrayBuffer(quad), func() {
		rawgl.EnableVertexAttribArray(uint32(pos.Location))
		rawgl.VertexAttribPointer(uint32(pos.Location), pos.SizeInFloats, rawgl.FLOAT, false, 0, rawgl.PtrOffset(0))
	})

	prog.Use()
	rawgl.Uniform1i(prog.UniformLocation("u_texture"), 0)

	draw := glstate.Settings().Blend(*opts.Blend).Texture(0, tex).ArrayBuffer(quad)
	for !win.ShouldClose() {
		w, h := win.GetFramebufferSize()
		rawgl.Viewport(0, 0, int32(w), int32(h))
		rawgl.ClearColor(0.1, 0.1, 0.1, 1.0)
		rawgl.Clear(rawgl.COLOR_BUFFER_BIT)

		g.Apply(draw, func() {
			rawgl.DrawArrays(rawgl.TRIANGLES, 0, 6)
		})

		win.EndFrame()
	}
	return nil
}

func main() {
	opts := &options.Options{
		Width:   flag.Int("width", 1280, "Width of the window"),
		Height:  flag.Int("height", 720, "Height of the window"),
		Image:   flag.String("image", "", "Image file to display (PNG or JPEG); default is a checkerboard"),
		Filter:  flag.String("filter", "linear", "Texture filter: linear or nearest"),
		Blend:   flag.Bool("blend", true, "Draw with blending enabled"),
		Verbose: flag.Bool("verbose", false, "Log resource lifecycle events"),
	}
	flag.Parse()

	if *opts.Verbose {
		glstate.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(opts); err != nil {
		log.Fatalf("goglscope: %v", err)
	}
}
