package types

// VM represents a virtual machine belonging to a cluster
type VM struct {
	ID    *string `json:"id,omitempty" yaml:"id,omitempty"`
	Name  *string `json:"name,omitempty" yaml:"name,omitempty"`
	State *string `json:"state,omitempty" yaml:"state,omitempty"`
}

func (v *VM) GetID() string {
	if v == nil {
		return ""
	}
	return str(v.ID)
}

func (v *VM) GetName() string {
	if v == nil {
		return ""
	}
	return str(v.Name)
}

func (v *VM) GetState() string {
	if v == nil {
		return ""
	}
	return str(v.State)
}

// IsReady returns true if the VM reports the READY state
func (v *VM) IsReady() bool {
	return v.GetState() == "READY"
}
