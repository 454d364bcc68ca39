package loader

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/jar0582/schedsim/pkg/model"
)

type yamlDocument struct {
	Processes []model.Process `yaml:"processes"`
}

// parseYAML reads a document of the form
//
//	processes:
//	  - name: P1
//	    arrival_time: 0
//	    burst_time: 5
//	    priority: 3
func parseYAML(r io.Reader, name string) ([]model.Process, error) {
	var doc yamlDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: parse %s: %v", model.ErrConfig, name, err)
	}
	return doc.Processes, nil
}
