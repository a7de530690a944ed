package runner

import (
	"embed"
	"fmt"
	"path"

	"github.com/cedana/graphbench/pkg/template"
	"github.com/spf13/afero"
)

//go:embed templates/*.txt
var embeddedTemplates embed.FS

type machineTemplates struct {
	command string
	job     string
}

var defaultTemplates = map[string]machineTemplates{
	MachineShared:   {command: "command_shared.txt"},
	MachineSuperMUC: {command: "command_intel.txt", job: "supermuc.txt"},
	MachineHoreKa:   {command: "command_srun.txt", job: "horeka.txt"},
	MachineGeneric:  {command: "command_generic.txt", job: "generic_job_file.txt"},
}

// loadTemplate reads the template at file, or the embedded template if file
// is empty.
func loadTemplate(fs afero.Fs, file, embedded string) (*template.Template, error) {
	if file != "" {
		return template.Load(fs, file)
	}
	if embedded == "" {
		return nil, fmt.Errorf("no default template, please provide one")
	}
	data, err := embeddedTemplates.ReadFile(path.Join("templates", embedded))
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded template %s: %w", embedded, err)
	}
	return template.New(embedded, string(data)), nil
}

// DefaultTemplate returns the embedded default template text of a machine.
func DefaultTemplate(machine string, job bool) (string, error) {
	defaults, ok := defaultTemplates[machine]
	if !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownMachine, machine)
	}
	name := defaults.command
	if job {
		name = defaults.job
	}
	t, err := loadTemplate(nil, "", name)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}
