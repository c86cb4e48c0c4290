package types

// Image represents a virtual machine image.
// Optional attributes are nil when the backend did not report them.
type Image struct {
	ID                  *string        `json:"id,omitempty" yaml:"id,omitempty"`
	Name                *string        `json:"name,omitempty" yaml:"name,omitempty"`
	State               *string        `json:"state,omitempty" yaml:"state,omitempty"`
	Size                *int64         `json:"size,omitempty" yaml:"size,omitempty"` // bytes
	ReplicationType     *string        `json:"replicationType,omitempty" yaml:"replicationType,omitempty"`
	ReplicationProgress *string        `json:"replicationProgress,omitempty" yaml:"replicationProgress,omitempty"`
	SeedingProgress     *string        `json:"seedingProgress,omitempty" yaml:"seedingProgress,omitempty"`
	Settings            []ImageSetting `json:"settings,omitempty" yaml:"settings,omitempty"`
}

// ImageSetting is a named image setting with its default value
type ImageSetting struct {
	Name         *string `json:"name,omitempty" yaml:"name,omitempty"`
	DefaultValue *string `json:"defaultValue,omitempty" yaml:"defaultValue,omitempty"`
}

func (i *Image) GetID() string {
	if i == nil {
		return ""
	}
	return str(i.ID)
}

func (i *Image) GetName() string {
	if i == nil {
		return ""
	}
	return str(i.Name)
}

func (i *Image) GetState() string {
	if i == nil {
		return ""
	}
	return str(i.State)
}

func (i *Image) GetReplicationType() string {
	if i == nil {
		return ""
	}
	return str(i.ReplicationType)
}

func (i *Image) GetReplicationProgress() string {
	if i == nil {
		return ""
	}
	return str(i.ReplicationProgress)
}

func (i *Image) GetSeedingProgress() string {
	if i == nil {
		return ""
	}
	return str(i.SeedingProgress)
}

func (i *Image) GetSize() int64 {
	if i == nil || i.Size == nil {
		return 0
	}
	return *i.Size
}

func (s *ImageSetting) GetName() string {
	if s == nil {
		return ""
	}
	return str(s.Name)
}

func (s *ImageSetting) GetDefaultValue() string {
	if s == nil {
		return ""
	}
	return str(s.DefaultValue)
}

// ImageCreateFromVMSpec is the payload for capturing an image from a VM
type ImageCreateFromVMSpec struct {
	Name            string `json:"name" yaml:"name"`
	ReplicationType string `json:"replicationType,omitempty" yaml:"replicationType,omitempty"`
}
