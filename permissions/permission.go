package permissions

import (
	_ "embed"
	"encoding/json"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

// Permission lists the roles allowed on one chi route pattern. Skip marks a public route.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

func key(method, path string) string {
	return method + " " + path
}

// FindPermissions returns the zero Permission for routes missing from the table.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	if r.index == nil {
		for _, endpoint := range r.Endpoints {
			if endpoint.Path == path && endpoint.Method == method {
				return endpoint
			}
		}

		return Permission{}
	}

	idx, ok := r.index[key(method, path)]
	if !ok {
		return Permission{}
	}

	return r.Endpoints[idx]
}

func (r *PermissionData) buildIndex() {
	r.index = make(map[string]int, len(r.Endpoints))

	for idx, endpoint := range r.Endpoints {
		k := key(endpoint.Method, endpoint.Path)
		if _, exists := r.index[k]; exists {
			log.Warn().Str("endpoint", k).Msg("Duplicate permission entry, keeping the first one")

			continue
		}

		r.index[k] = idx
	}
}

func Get() *PermissionData {
	var permissions PermissionData

	if err := json.Unmarshal(permissionsData, &permissions); err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	permissions.buildIndex()

	public := 0
	for _, endpoint := range permissions.Endpoints {
		if endpoint.Skip {
			public++
		}
	}

	log.Info().Int("endpoints", len(permissions.Endpoints)).Int("public", public).Msg("Loaded embedded permissions")

	return &permissions
}
