package scene

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category

	build func(random *rand.Rand) *Scene
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

var builtInScenes = []SceneInfo{
	{
		ID:          "spheres",
		DisplayName: "Spheres",
		Description: "Metal, diffuse and glass spheres on a ground sphere",
		Group:       "Basic",
		build:       func(*rand.Rand) *Scene { return NewSpheresScene() },
	},
	{
		ID:          "grid",
		DisplayName: "Sphere Grid",
		Description: "Three spheres and a 20x20 grid of small spheres on a plane",
		Group:       "Reference",
		build:       NewGridScene,
	},
	{
		ID:          "scatter",
		DisplayName: "Scattered Spheres",
		Description: "Three spheres and 300 random small spheres on a checkered plane",
		Group:       "Reference",
		build:       NewScatterScene,
	},
}

// ListScenes returns the built-in scenes sorted by ID
func ListScenes() []SceneInfo {
	scenes := append([]SceneInfo(nil), builtInScenes...)
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].ID < scenes[j].ID
	})
	return scenes
}

// ListSceneGroups returns the built-in scenes grouped by category, groups
// in alphabetical order
func ListSceneGroups() []SceneGroup {
	groupMap := make(map[string][]SceneInfo)
	for _, info := range ListScenes() {
		groupMap[info.Group] = append(groupMap[info.Group], info)
	}

	var groupNames []string
	for groupName := range groupMap {
		groupNames = append(groupNames, groupName)
	}
	sort.Strings(groupNames)

	groups := make([]SceneGroup, 0, len(groupNames))
	for _, groupName := range groupNames {
		groups = append(groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return groups
}

// NewScene builds the built-in scene with the given ID. random drives any
// randomized scene content.
func NewScene(id string, random *rand.Rand) (*Scene, error) {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, info := range builtInScenes {
		if info.ID == id {
			return info.build(random), nil
		}
	}

	ids := make([]string, 0, len(builtInScenes))
	for _, info := range ListScenes() {
		ids = append(ids, info.ID)
	}
	return nil, fmt.Errorf("unknown scene %q (available: %s)", id, strings.Join(ids, ", "))
}
