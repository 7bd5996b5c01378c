package metadata

// The dump format is written by an external metadata exporter: one document
// per module, types in metadata order.

type moduleDump struct {
	Name  string     `json:"name" yaml:"name"`
	File  string     `json:"file,omitempty" yaml:"file,omitempty"`
	Types []typeDump `json:"types" yaml:"types"`
}

type typeRefDump struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Name      string `json:"name" yaml:"name"`
}

type typeDump struct {
	Namespace   string         `json:"namespace" yaml:"namespace"`
	Name        string         `json:"name" yaml:"name"`
	Visibility  string         `json:"visibility" yaml:"visibility"`
	Kind        string         `json:"kind,omitempty" yaml:"kind,omitempty"`
	Abstract    bool           `json:"abstract,omitempty" yaml:"abstract,omitempty"`
	Sealed      bool           `json:"sealed,omitempty" yaml:"sealed,omitempty"`
	Attributes  []string       `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Base        *typeRefDump   `json:"base,omitempty" yaml:"base,omitempty"`
	Token       string         `json:"token,omitempty" yaml:"token,omitempty"`
	Declaration string         `json:"declaration,omitempty" yaml:"declaration,omitempty"`
	Fields      []fieldDump    `json:"fields,omitempty" yaml:"fields,omitempty"`
	Properties  []propertyDump `json:"properties,omitempty" yaml:"properties,omitempty"`
	Methods     []methodDump   `json:"methods,omitempty" yaml:"methods,omitempty"`
}

type fieldDump struct {
	Name        string `json:"name" yaml:"name"`
	Type        string `json:"type" yaml:"type"`
	Access      string `json:"access" yaml:"access"`
	Static      bool   `json:"static,omitempty" yaml:"static,omitempty"`
	Token       string `json:"token,omitempty" yaml:"token,omitempty"`
	Declaration string `json:"declaration,omitempty" yaml:"declaration,omitempty"`
}

type accessorDump struct {
	Access string `json:"access" yaml:"access"`
}

type propertyDump struct {
	Name        string        `json:"name" yaml:"name"`
	Type        string        `json:"type" yaml:"type"`
	Getter      *accessorDump `json:"getter,omitempty" yaml:"getter,omitempty"`
	Setter      *accessorDump `json:"setter,omitempty" yaml:"setter,omitempty"`
	Token       string        `json:"token,omitempty" yaml:"token,omitempty"`
	Declaration string        `json:"declaration,omitempty" yaml:"declaration,omitempty"`
}

type paramDump struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

type methodDump struct {
	Name        string      `json:"name" yaml:"name"`
	Constructor bool        `json:"constructor,omitempty" yaml:"constructor,omitempty"`
	Access      string      `json:"access" yaml:"access"`
	Static      bool        `json:"static,omitempty" yaml:"static,omitempty"`
	Returns     string      `json:"returns,omitempty" yaml:"returns,omitempty"`
	Params      []paramDump `json:"params,omitempty" yaml:"params,omitempty"`
	Token       string      `json:"token,omitempty" yaml:"token,omitempty"`
	Declaration string      `json:"declaration,omitempty" yaml:"declaration,omitempty"`
}
