package syscallmd

import (
	"encoding/json"
	"fmt"
	"strings"
)

const (
	numberMacroPrefix = "__NR_"
	userPointerSuffix = "__user *"
)

// SystemCall is a single sys_* declaration from include/linux/syscalls.h.
type SystemCall struct {
	Name       string
	ReturnType string
	// Params are in declaration order, which is the ABI argument order.
	Params []SystemCallParameter
}

// NumberMacro is the name of the syscall number macro, e.g. __NR_write. Not
// every call has one on every architecture, so emitted code guards on it.
func (s SystemCall) NumberMacro() string {
	return numberMacroPrefix + s.Name
}

func (s SystemCall) NumParams() int {
	return len(s.Params)
}

func (s SystemCall) ManPage() string {
	return manPage(s.Name)
}

func (s SystemCall) MarshalJSON() ([]byte, error) {
	params := s.Params
	if params == nil {
		params = []SystemCallParameter{}
	}
	return json.Marshal(struct {
		Name        string                `json:"name"`
		ReturnType  string                `json:"return_type"`
		NumberMacro string                `json:"number_macro"`
		ManPage     string                `json:"man_page,omitempty"`
		Params      []SystemCallParameter `json:"params"`
	}{
		Name:        s.Name,
		ReturnType:  s.ReturnType,
		NumberMacro: s.NumberMacro(),
		ManPage:     s.ManPage(),
		Params:      params,
	})
}

// SystemCallParameter is one formal parameter. An empty Name means the
// declaration only gave a type.
type SystemCallParameter struct {
	Name string `json:"name,omitempty"`
	Type string `json:"type"`
}

func (p SystemCallParameter) IsAnonymous() bool {
	return p.Name == ""
}

// IsUserPointer reports whether the parameter points into user space memory.
func (p SystemCallParameter) IsUserPointer() bool {
	return strings.HasSuffix(p.Type, userPointerSuffix)
}

func (p SystemCallParameter) String() string {
	if p.IsAnonymous() {
		return p.Type
	}
	if strings.HasSuffix(p.Type, "*") {
		return p.Type + p.Name
	}
	return p.Type + " " + p.Name
}

func (p SystemCallParameter) MarshalJSON() ([]byte, error) {
	type param SystemCallParameter
	return json.Marshal(struct {
		param
		UserPointer bool `json:"user_pointer"`
	}{
		param:       param(p),
		UserPointer: p.IsUserPointer(),
	})
}

func manPage(name string) string {
	if name == "_llseek" || name == "llseek" {
		name = "lseek"
	}
	return fmt.Sprintf("https://man7.org/linux/man-pages/man2/%s.2.html", name)
}
