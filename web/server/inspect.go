package server

import (
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/df07/go-realtime-raytracer/pkg/core"
	"github.com/df07/go-realtime-raytracer/pkg/geometry"
	"github.com/df07/go-realtime-raytracer/pkg/material"
	"github.com/df07/go-realtime-raytracer/pkg/renderer"
	"github.com/df07/go-realtime-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	GeometryType string                 `json:"geometryType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	UV           [2]float64             `json:"uv"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

func vec3JSON(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func hexColor(c core.Vec3) string {
	c = c.Clamp(0, 1)
	return fmt.Sprintf("#%02x%02x%02x", int(c.X*255), int(c.Y*255), int(c.Z*255))
}

// extractTextureInfo describes a texture; uv and point pick the sampled color
func extractTextureInfo(tex material.Texture, uv core.Vec2, point core.Vec3) map[string]interface{} {
	properties := map[string]interface{}{}
	if tex == nil {
		return properties
	}

	sampled := tex.Evaluate(uv, point)
	properties["sampled"] = vec3JSON(sampled)
	properties["color"] = hexColor(sampled)

	switch t := tex.(type) {
	case *material.SolidColor:
		properties["type"] = "solid"
	case *material.CheckerTexture:
		properties["type"] = "checker"
		properties["even"] = extractTextureInfo(t.Even, uv, point)
		properties["odd"] = extractTextureInfo(t.Odd, uv, point)
	case *material.NoiseTexture:
		properties["type"] = "noise"
	case *material.ImageTexture:
		properties["type"] = "image"
		if t.Image != nil {
			properties["size"] = [2]int{t.Image.Width(), t.Image.Height()}
		}
	default:
		properties["type"] = "unknown"
	}
	return properties
}

// extractMaterialInfo extracts material information with type assertions
func extractMaterialInfo(mat material.Material, hit *material.HitRecord) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case nil:
		return "none", properties

	case *material.Lambertian:
		properties["albedo"] = extractTextureInfo(m.Albedo, hit.UV, hit.Point)
		return "lambertian", properties

	case *material.Metal:
		properties["albedo"] = vec3JSON(m.Albedo)
		properties["color"] = hexColor(m.Albedo)
		properties["fuzz"] = m.Fuzz
		return "metal", properties

	case *material.Dielectric:
		properties["refractiveIndex"] = m.RefractiveIndex
		properties["color"] = "#ffffff" // Clear glass
		return "dielectric", properties

	case *material.DiffuseLight:
		properties["emission"] = extractTextureInfo(m.Emission, hit.UV, hit.Point)
		return "diffuse_light", properties

	case *material.Isotropic:
		properties["albedo"] = extractTextureInfo(m.Albedo, hit.UV, hit.Point)
		return "isotropic", properties

	case *material.Layered:
		outerType, outerProps := extractMaterialInfo(m.Outer, hit)
		innerType, innerProps := extractMaterialInfo(m.Inner, hit)
		properties["outer"] = map[string]interface{}{"type": outerType, "properties": outerProps}
		properties["inner"] = map[string]interface{}{"type": innerType, "properties": innerProps}
		return "layered", properties

	case *material.Mix:
		aType, aProps := extractMaterialInfo(m.A, hit)
		bType, bProps := extractMaterialInfo(m.B, hit)
		properties["a"] = map[string]interface{}{"type": aType, "properties": aProps}
		properties["b"] = map[string]interface{}{"type": bType, "properties": bProps}
		properties["ratio"] = m.Ratio
		properties["description"] = fmt.Sprintf("%.0f%% %s, %.0f%% %s",
			(1-m.Ratio)*100, aType, m.Ratio*100, bType)
		return "mixed", properties

	default:
		return "unknown", properties
	}
}

// extractGeometryInfo describes the top-level object that was hit
func extractGeometryInfo(object geometry.Hittable) (string, map[string]interface{}) {
	properties := make(map[string]interface{})
	if object != nil {
		bbox := object.BoundingBox()
		properties["boundingBox"] = map[string]interface{}{
			"min": vec3JSON(bbox.Min()),
			"max": vec3JSON(bbox.Max()),
		}
	}

	switch geom := object.(type) {
	case *geometry.Sphere:
		properties["center"] = vec3JSON(geom.Center.Origin)
		properties["radius"] = geom.Radius
		if !geom.Center.Direction.NearZero() {
			properties["motion"] = vec3JSON(geom.Center.Direction)
		}
		return "sphere", properties

	case *geometry.Quad:
		properties["corner"] = vec3JSON(geom.Corner)
		properties["u"] = vec3JSON(geom.U)
		properties["v"] = vec3JSON(geom.V)
		properties["normal"] = vec3JSON(geom.Normal())
		return "quad", properties

	case *geometry.ConstantMedium:
		boundaryType, boundaryProps := extractGeometryInfo(geom.Boundary)
		properties["boundary"] = map[string]interface{}{"type": boundaryType, "properties": boundaryProps}
		return "constant_medium", properties

	case *geometry.Instance:
		objectType, objectProps := extractGeometryInfo(geom.Object)
		properties["offset"] = vec3JSON(geom.Offset)
		properties["object"] = map[string]interface{}{"type": objectType, "properties": objectProps}
		return "instance", properties

	case *geometry.HittableList:
		properties["count"] = geom.Len()
		return "list", properties

	case *geometry.BVH:
		stats := geom.Stats()
		properties["primitives"] = stats.Primitives
		properties["depth"] = stats.MaxDepth
		return "bvh", properties

	default:
		return "unknown", properties
	}
}

// InspectResult is the closest hit through a pixel and the top-level object it belongs to
type InspectResult struct {
	Hit       bool
	HitRecord material.HitRecord
	Object    geometry.Hittable
}

// inspectPixel casts a ray through the center of pixel (x, y)
func inspectPixel(sceneObj *scene.Scene, camera *renderer.Camera, pixelX, pixelY int) InspectResult {
	ray := camera.GetRay(pixelX, pixelY, false, false, nil)
	sampler := core.NewSeededSampler(0)

	var hit material.HitRecord
	if !sceneObj.World.Hit(ray, core.NewInterval(0.001, math.Inf(1)), &hit, sampler) {
		return InspectResult{}
	}

	// The BVH reports only the hit, so find the object that produced it.
	// Volumes scatter randomly and may not reproduce the same distance.
	result := InspectResult{Hit: true, HitRecord: hit}
	var objectHit material.HitRecord
	for _, object := range sceneObj.Objects {
		if object.Hit(ray, core.NewInterval(0.001, hit.T+1e-9), &objectHit, core.NewSeededSampler(0)) && objectHit.T == hit.T {
			result.Object = object
			break
		}
	}
	return result
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid scene parameters: " + err.Error()})
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid x coordinate"})
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Invalid y coordinate"})
		return
	}

	sceneObj, err := s.createScene(req.Scene, core.DiscardLogger)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	cameraConfig := sceneObj.CameraConfig
	if req.Width > 0 {
		cameraConfig.Width = req.Width
	}
	if req.Height > 0 {
		cameraConfig.Height = req.Height
	}
	if pixelX < 0 || pixelX >= cameraConfig.Width || pixelY < 0 || pixelY >= cameraConfig.Height {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "Pixel coordinates out of bounds"})
		return
	}

	result := inspectPixel(sceneObj, renderer.NewCamera(cameraConfig), pixelX, pixelY)
	if !result.Hit {
		writeJSON(w, http.StatusOK, InspectResponse{Hit: false})
		return
	}

	hit := result.HitRecord
	materialType, materialProps := extractMaterialInfo(hit.Material, &hit)
	geometryType, geometryProps := extractGeometryInfo(result.Object)

	writeJSON(w, http.StatusOK, InspectResponse{
		Hit:          true,
		MaterialType: materialType,
		GeometryType: geometryType,
		Point:        vec3JSON(hit.Point),
		Normal:       vec3JSON(hit.Normal),
		UV:           [2]float64{hit.UV.X, hit.UV.Y},
		Distance:     hit.T,
		FrontFace:    hit.FrontFace,
		Properties: map[string]interface{}{
			"material": materialProps,
			"geometry": geometryProps,
		},
	})
}
