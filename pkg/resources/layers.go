package resources

import (
	"encoding/json"
	"fmt"

	"github.com/richard-senior/dxfshapes/internal/logger"
	"github.com/richard-senior/dxfshapes/pkg/drawing"
	"github.com/richard-senior/dxfshapes/pkg/dxf"
	"github.com/richard-senior/dxfshapes/pkg/protocol"
)

// LayerDefaultsURI identifies the layer defaults document
const LayerDefaultsURI = "dxf://layer-defaults"

// LayerDefaultsResource describes the standard layer set and unit table
func LayerDefaultsResource() protocol.Resource {
	return protocol.Resource{
		URI:         LayerDefaultsURI,
		Name:        "dxf_layer_defaults",
		Description: "The layers every dxf_draw drawing starts with, plus the supported units, versions and linetypes",
		MimeType:    "application/json",
	}
}

// GetResources returns all available resources
func GetResources() []protocol.Resource {
	return []protocol.Resource{
		LayerDefaultsResource(),
	}
}

type layerDefaults struct {
	Layers    []*dxf.Layer      `json:"layers"`
	Units     map[string]int    `json:"units"`
	Versions  map[string]string `json:"versions"`
	Linetypes []string          `json:"linetypes"`
}

// Read returns the contents of the resource at uri
func Read(uri string) ([]protocol.ResourceContents, error) {
	logger.Info("Handling resource read for:", uri)

	switch uri {
	case LayerDefaultsURI, "dxf_layer_defaults":
		d, err := drawing.New("", dxf.DefaultVersion.Name, "mm", true)
		if err != nil {
			return nil, err
		}
		body := layerDefaults{
			Layers:   d.Layers(),
			Units:    map[string]int{},
			Versions: map[string]string{},
		}
		for _, name := range dxf.UnitNames() {
			u, _ := dxf.ParseUnits(name)
			body.Units[name] = int(u)
		}
		for _, v := range dxf.Versions() {
			body.Versions[v.Name] = v.Code
		}
		body.Linetypes = dxf.LinetypeNames()
		text, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return nil, err
		}
		return []protocol.ResourceContents{{URI: LayerDefaultsURI, MimeType: "application/json", Text: string(text)}}, nil
	default:
		return nil, fmt.Errorf("resource not found: %s", uri)
	}
}
