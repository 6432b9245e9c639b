package scene

import (
	"sort"
	"strings"
)

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Name accepted by Create
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"`
	Group       string `json:"group"` // Grouping category
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

type sceneEntry struct {
	info  SceneInfo
	build func(opts Options) *Scene
}

const (
	groupShowcase = "Showcase"
	groupTextures = "Textures"
	groupLighting = "Lighting"
)

// catalog lists every built-in scene in display order
var catalog = []sceneEntry{
	{info("spheres", groupShowcase, "Metal and diffuse spheres on a giant ground sphere"), NewSpheresScene},
	{info("default", groupShowcase, "Coated, metal and glass spheres on a ground quad"), NewDefaultScene},
	{info("bouncing-spheres", groupShowcase, "Random sphere field with motion-blurred diffuse spheres"), NewBouncingSpheresScene},
	{info("sphere-grid", groupShowcase, "Grid of rainbow fuzzy-metal spheres"), NewSphereGridScene},
	{info("final-scene", groupShowcase, "Every primitive, material and texture in one Cornell-lit room"), NewFinalScene},
	{info("checkered-spheres", groupTextures, "Two spheres with a spatial checker texture"), NewCheckeredSpheresScene},
	{info("perlin-spheres", groupTextures, "Marble Perlin noise texture"), NewPerlinSpheresScene},
	{info("earth", groupTextures, "Image-textured globe"), NewEarthScene},
	{info("quads", groupTextures, "Five colored quads"), NewQuadsScene},
	{info("single-sphere", groupTextures, "One diffuse sphere under the sky"), NewSingleSphereScene},
	{info("simple-light", groupLighting, "Noise-textured spheres lit by a sphere and a quad light"), NewSimpleLightScene},
	{info("cornell-box", groupLighting, "Cornell box with two rotated boxes"), NewCornellScene},
	{info("cornell-smoke", groupLighting, "Cornell box with smoke and fog blocks"), NewCornellSmokeScene},
}

func info(id, group, description string) SceneInfo {
	return SceneInfo{ID: id, DisplayName: titleCase(id), Description: description, Group: group}
}

func findScene(name string) (sceneEntry, bool) {
	for _, entry := range catalog {
		if entry.info.ID == name {
			return entry, true
		}
	}
	return sceneEntry{}, false
}

// Names returns the IDs of every built-in scene
func Names() []string {
	names := make([]string, len(catalog))
	for i, entry := range catalog {
		names[i] = entry.info.ID
	}
	return names
}

// ListAllScenes returns the built-in scenes grouped by category,
// showcase first and the rest alphabetically
func ListAllScenes() ScenesResponse {
	groupMap := make(map[string][]SceneInfo)
	for _, entry := range catalog {
		groupMap[entry.info.Group] = append(groupMap[entry.info.Group], entry.info)
	}

	var groupNames []string
	for groupName := range groupMap {
		if groupName != groupShowcase {
			groupNames = append(groupNames, groupName)
		}
	}
	sort.Strings(groupNames)

	var response ScenesResponse
	if showcase, exists := groupMap[groupShowcase]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: groupShowcase, Scenes: showcase})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}
	return response
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-empty" -> "Cornell Empty"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}
