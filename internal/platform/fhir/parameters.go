package fhir

// Parameters represents a FHIR Parameters resource, used by terminology
// operations such as ConceptMap/$translate.
type Parameters struct {
	ResourceType string      `json:"resourceType"`
	Parameter    []Parameter `json:"parameter"`
}

// Parameter is a single name/value pair, possibly with nested parts.
type Parameter struct {
	Name         string      `json:"name"`
	ValueBoolean *bool       `json:"valueBoolean,omitempty"`
	ValueString  string      `json:"valueString,omitempty"`
	ValueCode    string      `json:"valueCode,omitempty"`
	ValueUri     string      `json:"valueUri,omitempty"`
	ValueCoding  *Coding     `json:"valueCoding,omitempty"`
	Part         []Parameter `json:"part,omitempty"`
}

// NewParameters creates an empty Parameters resource.
func NewParameters() *Parameters {
	return &Parameters{ResourceType: "Parameters"}
}

// AddBoolean appends a boolean parameter.
func (p *Parameters) AddBoolean(name string, value bool) *Parameters {
	v := value
	p.Parameter = append(p.Parameter, Parameter{Name: name, ValueBoolean: &v})
	return p
}

// AddString appends a string parameter.
func (p *Parameters) AddString(name, value string) *Parameters {
	p.Parameter = append(p.Parameter, Parameter{Name: name, ValueString: value})
	return p
}

// AddPart appends a parameter composed of nested parts.
func (p *Parameters) AddPart(name string, parts ...Parameter) *Parameters {
	p.Parameter = append(p.Parameter, Parameter{Name: name, Part: parts})
	return p
}

// Find returns the first parameter with the given name, or nil.
func (p *Parameters) Find(name string) *Parameter {
	for i := range p.Parameter {
		if p.Parameter[i].Name == name {
			return &p.Parameter[i]
		}
	}
	return nil
}
