package permissions

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission guards one route. Skip makes it public, otherwise Permissions lists the roles allowed in.
// An empty Permissions list admits any signed in user.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	once  sync.Once
	index map[string]Permission
}

// NormalizePath drops the trailing slash chi keeps on collection routes, so "/v1/rooms/" and "/v1/rooms" share an entry.
func NormalizePath(path string) string {
	if len(path) > 1 {
		return strings.TrimRight(path, "/")
	}

	return path
}

func key(path, method string) string {
	return strings.ToUpper(method) + " " + NormalizePath(path)
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	r.once.Do(func() {
		if r.index == nil {
			r.buildIndex()
		}
	})

	return r.index[key(path, method)]
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]Permission, len(r.Endpoints))
	for _, endpoint := range r.Endpoints {
		r.index[key(endpoint.Path, endpoint.Method)] = endpoint
	}
}

// Load decodes a permissions document and rejects routes declared twice.
func Load(data []byte) (*PermissionData, error) {
	var permissions PermissionData

	if err := json.Unmarshal(data, &permissions); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	permissions.index = make(map[string]Permission, len(permissions.Endpoints))

	for _, endpoint := range permissions.Endpoints {
		k := key(endpoint.Path, endpoint.Method)
		if _, ok := permissions.index[k]; ok {
			return nil, fmt.Errorf("duplicate permission for %s", k)
		}

		permissions.index[k] = endpoint
	}

	return &permissions, nil
}

// Get loads the embedded permissions. It returns nil when the document is invalid, which makes every non public route forbidden.
func Get() *PermissionData {
	permissions, err := Load(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Msg("Successfully loaded embedded permissions")

	return permissions
}
