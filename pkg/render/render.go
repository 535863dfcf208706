// Package render turns an engine plus configuration into the build
// definition (Dockerfile) and service definition (compose file) texts.
// Rendering is pure string construction: identical inputs always produce
// byte-identical output, and nothing here touches the container runtime.
package render

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"

	"github.com/databacker/devdb/pkg/engine"
)

const dockerfileTemplate = `FROM {{ .Image }}

{{ range .Env }}ENV {{ .Key }}={{ .Value }}
{{ end }}
COPY {{ .DumpFile }} {{ .SeedDir }}/{{ .DumpFile }}

EXPOSE {{ .Port }}

HEALTHCHECK --interval=5s --timeout=3s CMD {{ .HealthCmd }}
`

var dockerfileTmpl = template.Must(template.New("dockerfile").Parse(dockerfileTemplate))

// Input is everything the templates depend on.
type Input struct {
	Engine   engine.Engine
	User     string
	Password string
	// DumpFile is the base name of the dump inside the build context.
	DumpFile string
	// Port is the externally published port for the service definition.
	Port int
}

// Dockerfile renders the build definition seeding the engine image with
// the dump file.
func Dockerfile(in Input) (string, error) {
	data := struct {
		Image     string
		Env       []engine.EnvVar
		DumpFile  string
		SeedDir   string
		Port      int
		HealthCmd string
	}{
		Image:     in.Engine.Image,
		Env:       in.Engine.Env(in.User, in.Password),
		DumpFile:  in.DumpFile,
		SeedDir:   in.Engine.SeedDir,
		Port:      in.Engine.Port,
		HealthCmd: in.Engine.HealthCmd(in.User, in.Password),
	}
	var buf bytes.Buffer
	if err := dockerfileTmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render build definition: %w", err)
	}
	return buf.String(), nil
}

type composeService struct {
	Build         string   `yaml:"build"`
	ContainerName string   `yaml:"container_name"`
	Ports         []string `yaml:"ports"`
	Restart       string   `yaml:"restart"`
}

type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

// Compose renders the companion service definition referencing the db/
// build directory and the port mapping.
func Compose(in Input) (string, error) {
	doc := composeFile{
		Services: map[string]composeService{
			"db": {
				Build:         "./db",
				ContainerName: in.Engine.ContainerName(),
				Ports:         []string{fmt.Sprintf("%d:%d", in.Port, in.Engine.Port)},
				Restart:       "unless-stopped",
			},
		},
	}
	out, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("failed to render service definition: %w", err)
	}
	return string(out), nil
}
