package cli

import (
	"strconv"
	"strings"

	"github.com/vietdv277/cirrus/pkg/provider"
	"github.com/vietdv277/cirrus/pkg/types"
)

const (
	fieldDelimiter    = "\t"
	propertyDelimiter = ":"
	settingsDelimiter = ","
)

// Field positions of a `cluster show` record
const (
	clusterFieldID = iota
	clusterFieldName
	clusterFieldState
	clusterFieldType
	clusterFieldWorkerCount
	clusterFieldProperties
)

// Field positions of an `image show` record
const (
	imageFieldID = iota
	imageFieldName
	imageFieldState
	imageFieldSize
	imageFieldReplicationType
	imageFieldReplicationProgress
	imageFieldSeedingProgress
	imageFieldSettings
)

// settingsLayout is the shape of an `image show` response.
// The tool prints settings in one of two ways and both must be read.
type settingsLayout int

const (
	// layoutSeparateLine: seven fields on the first line, settings on the
	// third line as name<TAB>value pairs.
	layoutSeparateLine settingsLayout = iota
	// layoutInlineField: settings in the eighth field as name:value pairs.
	layoutInlineField
)

func detectSettingsLayout(fieldCount int) settingsLayout {
	if fieldCount == imageFieldSettings {
		return layoutSeparateLine
	}
	return layoutInlineField
}

// record is one tab-separated response line
type record []string

func splitRecord(line string) record {
	return strings.Split(line, fieldDelimiter)
}

// str returns field i, or nil when it is missing or empty
func (r record) str(i int) *string {
	if i >= len(r) || r[i] == "" {
		return nil
	}
	v := r[i]
	return &v
}

func (r record) raw(i int) string {
	if i >= len(r) {
		return ""
	}
	return r[i]
}

func (r record) integer(i int) (*int, error) {
	s := r.str(i)
	if s == nil {
		return nil, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*s))
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r record) integer64(i int) (*int64, error) {
	s := r.str(i)
	if s == nil {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*s), 10, 64)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func lines(raw string) []string {
	return strings.Split(raw, "\n")
}

// ParseCluster converts `cluster show` output into a Cluster.
// Missing trailing fields leave the corresponding attributes nil.
func ParseCluster(raw string) (*types.Cluster, error) {
	r := splitRecord(lines(raw)[0])
	if r.str(clusterFieldID) == nil {
		return nil, &provider.ParseError{Resource: "cluster", Reason: "record has no id", Raw: raw}
	}

	workers, err := r.integer(clusterFieldWorkerCount)
	if err != nil {
		return nil, &provider.ParseError{Resource: "cluster", Reason: "invalid worker count " + strconv.Quote(r.raw(clusterFieldWorkerCount)), Raw: raw}
	}

	return &types.Cluster{
		ID:                 r.str(clusterFieldID),
		Name:               r.str(clusterFieldName),
		State:              r.str(clusterFieldState),
		Type:               r.str(clusterFieldType),
		WorkerCount:        workers,
		ExtendedProperties: ParseExtendedProperties(r.raw(clusterFieldProperties)),
	}, nil
}

// ParseExtendedProperties decodes "key:value key:value" into a map. A token
// without a colon maps to an empty value; only the first colon separates.
func ParseExtendedProperties(raw string) map[string]string {
	props := make(map[string]string)
	for _, token := range strings.Fields(raw) {
		key, value, _ := strings.Cut(token, propertyDelimiter)
		props[key] = value
	}
	return props
}

// ParseImage converts `image show` output into an Image
func ParseImage(raw string) (*types.Image, error) {
	all := lines(raw)
	r := splitRecord(all[0])
	if r.str(imageFieldID) == nil {
		return nil, &provider.ParseError{Resource: "image", Reason: "record has no id", Raw: raw}
	}

	size, err := r.integer64(imageFieldSize)
	if err != nil {
		return nil, &provider.ParseError{Resource: "image", Reason: "invalid size " + strconv.Quote(r.raw(imageFieldSize)), Raw: raw}
	}

	img := &types.Image{
		ID:                  r.str(imageFieldID),
		Name:                r.str(imageFieldName),
		State:               r.str(imageFieldState),
		Size:                size,
		ReplicationType:     r.str(imageFieldReplicationType),
		ReplicationProgress: r.str(imageFieldReplicationProgress),
		SeedingProgress:     r.str(imageFieldSeedingProgress),
	}

	switch detectSettingsLayout(len(r)) {
	case layoutSeparateLine:
		var settingsLine string
		if len(all) > 2 {
			settingsLine = all[2]
		}
		img.Settings = ParseSettings(settingsLine, fieldDelimiter)
	default:
		img.Settings = ParseSettings(r.raw(imageFieldSettings), propertyDelimiter)
	}
	return img, nil
}

// ParseSettings decodes a comma-separated list of name<sep>value pairs.
// Trailing empty entries are dropped. The value ends at the next separator,
// so "a:b:c" has value "b".
func ParseSettings(raw, sep string) []types.ImageSetting {
	settings := []types.ImageSetting{}
	entries := strings.Split(raw, settingsDelimiter)
	for len(entries) > 0 && entries[len(entries)-1] == "" {
		entries = entries[:len(entries)-1]
	}
	for _, entry := range entries {
		parts := strings.Split(entry, sep)
		name, value := parts[0], ""
		if len(parts) > 1 {
			value = parts[1]
		}
		s := types.ImageSetting{}
		if name != "" {
			s.Name = types.String(name)
		}
		if value != "" {
			s.DefaultValue = types.String(value)
		}
		settings = append(settings, s)
	}
	return settings
}

// listRecords returns the lines of a bulk listing that carry more than one
// field. Trailing empty fields do not count.
func listRecords(raw string) []record {
	var out []record
	for _, line := range lines(raw) {
		r := splitRecord(line)
		for len(r) > 0 && r[len(r)-1] == "" {
			r = r[:len(r)-1]
		}
		if len(r) > 1 {
			out = append(out, r)
		}
	}
	return out
}

// ParseIDList returns the identifier column of a bulk listing
func ParseIDList(raw string) []string {
	var ids []string
	for _, r := range listRecords(raw) {
		ids = append(ids, r[0])
	}
	return ids
}

// ParseVMList converts `cluster list_vms` output (id, name, state per line)
func ParseVMList(raw string) []types.VM {
	vms := []types.VM{}
	for _, r := range listRecords(raw) {
		vms = append(vms, types.VM{
			ID:    r.str(0),
			Name:  r.str(1),
			State: r.str(2),
		})
	}
	return vms
}

// ParseCreatedID reads the identifier printed by a create command
func ParseCreatedID(resource, raw string) (string, error) {
	id := strings.TrimSpace(lines(raw)[0])
	if id == "" {
		return "", &provider.ParseError{Resource: resource, Reason: "create output has no id", Raw: raw}
	}
	return id, nil
}
