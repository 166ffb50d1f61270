package config

import (
	"fmt"
	"strings"
)

// BlacklistPolicy specifies what happens to nodes whose tag must never
// receive a component type.
type BlacklistPolicy int

const (
	// BlacklistPolicyContainer emits the node as a plain container.
	BlacklistPolicyContainer BlacklistPolicy = iota
	// BlacklistPolicyDrop removes the node and its subtree from the output.
	BlacklistPolicyDrop
)

var blacklistPolicyNames = []string{"container", "drop"}

func (p BlacklistPolicy) String() string {
	if p >= 0 && int(p) < len(blacklistPolicyNames) {
		return blacklistPolicyNames[p]
	}
	return fmt.Sprintf("BlacklistPolicy(%d)", int(p))
}

// ParseBlacklistPolicy converts a name into BlacklistPolicy.
func ParseBlacklistPolicy(name string) (BlacklistPolicy, error) {
	i, err := parseEnum(name, blacklistPolicyNames)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid blacklist policy, try [%s]", name, strings.Join(blacklistPolicyNames, ", "))
	}
	return BlacklistPolicy(i), nil
}

func (p BlacklistPolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *BlacklistPolicy) UnmarshalText(text []byte) error {
	v, err := ParseBlacklistPolicy(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// ImageResizeMode specifies how bitmaps are fitted into their boxes.
type ImageResizeMode int

const (
	// ImageResizeModeCover fills the box cropping what does not fit.
	ImageResizeModeCover ImageResizeMode = iota
	// ImageResizeModeContain fits the whole image inside the box.
	ImageResizeModeContain
	// ImageResizeModeStretch ignores the aspect ratio.
	ImageResizeModeStretch
)

var imageResizeModeNames = []string{"cover", "contain", "stretch"}

func (m ImageResizeMode) String() string {
	if m >= 0 && int(m) < len(imageResizeModeNames) {
		return imageResizeModeNames[m]
	}
	return fmt.Sprintf("ImageResizeMode(%d)", int(m))
}

// ParseImageResizeMode converts a name into ImageResizeMode.
func ParseImageResizeMode(name string) (ImageResizeMode, error) {
	i, err := parseEnum(name, imageResizeModeNames)
	if err != nil {
		return 0, fmt.Errorf("%s is not a valid image resize mode, try [%s]", name, strings.Join(imageResizeModeNames, ", "))
	}
	return ImageResizeMode(i), nil
}

func (m ImageResizeMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (m *ImageResizeMode) UnmarshalText(text []byte) error {
	v, err := ParseImageResizeMode(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func parseEnum(name string, names []string) (int, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range names {
		if n == name {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown value %q", name)
}
