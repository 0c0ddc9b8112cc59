package classdoc

// InheritedDocumentation replaces a member summary whose doc comment only
// carries an <inheritdoc/> marker.
const InheritedDocumentation = "(inherited documentation)"

// FieldDoc describes one public field or property.
type FieldDoc struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Summary string `json:"summary,omitempty"`
}

// MethodDoc describes one public method.
type MethodDoc struct {
	Name      string `json:"name"`
	Signature string `json:"signature"`
	Summary   string `json:"summary,omitempty"`
}

// ClassDescriptor is the structural and documentation metadata of one
// declared type.
type ClassDescriptor struct {
	Name        string      `json:"name"`
	Kind        string      `json:"kind"` // class, struct, interface, record, enum
	Namespace   string      `json:"namespace"`
	BaseType    string      `json:"baseClass,omitempty"`
	IsPartial   bool        `json:"isPartial"`
	Summary     string      `json:"summary,omitempty"`
	Remarks     string      `json:"remarks,omitempty"`
	InheritsDoc bool        `json:"inheritsDoc,omitempty"`
	Fields      []FieldDoc  `json:"properties"`
	Methods     []MethodDoc `json:"methods"`
	FilePath    string      `json:"filePath"`
	Line        int         `json:"line"`
}
