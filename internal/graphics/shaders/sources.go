package shaders

// GLSL sources. The cache prepends the version line and feature defines.

const glslVersion = "#version 410 core\n"

const meshVertex = `
layout(location = 0) in vec3 a_position;
layout(location = 1) in vec3 a_normal;
layout(location = 2) in vec2 a_uv0;

uniform mat4 u_vp;
uniform mat4 u_transform;

out vec3 v_normal;
out vec3 v_worldPos;
out vec2 v_uv;

void main() {
	vec4 world = u_transform * vec4(a_position, 1.0);
	v_worldPos = world.xyz;
	v_normal = mat3(u_transform) * a_normal;
	v_uv = a_uv0;
	gl_Position = u_vp * world;
}
`

// Alpha test is driven by u_alphaRef; the HAL sets it below zero when the
// test is disabled.
const alphaTest = `
uniform float u_alphaRef;
`

var staticSources = [totalShaders]struct {
	name             string
	vertex, fragment string
}{
	Fallback: {
		name:   "Fallback",
		vertex: meshVertex,
		fragment: `
out vec4 fragColor;

void main() {
	fragColor = vec4(1.0, 0.0, 1.0, 1.0);
}
`,
	},
	ConstantColor: {
		name:   "ConstantColor",
		vertex: meshVertex,
		fragment: `
uniform vec4 u_color;
out vec4 fragColor;

void main() {
	fragColor = u_color;
}
`,
	},
	Normals: {
		name:   "Normals",
		vertex: meshVertex,
		fragment: `
in vec3 v_normal;
out vec4 fragColor;

void main() {
	fragColor = vec4(normalize(v_normal) * 0.5 + 0.5, 1.0);
}
`,
	},
	Diffuse: {
		name:   "Diffuse",
		vertex: meshVertex,
		fragment: alphaTest + `
in vec2 v_uv;

uniform sampler2D u_tex0;

out vec4 fragColor;

void main() {
	vec4 color = texture(u_tex0, v_uv);
	if (color.a <= u_alphaRef) {
		discard;
	}
	fragColor = color;
}
`,
	},
	VertexColor: {
		name: "VertexColor",
		vertex: `
layout(location = 0) in vec3 a_position;
layout(location = 1) in vec4 a_color;

uniform mat4 u_vp;

out vec4 v_color;

void main() {
	v_color = a_color;
	gl_Position = u_vp * vec4(a_position, 1.0);
}
`,
		fragment: `
in vec4 v_color;
out vec4 fragColor;

void main() {
	fragColor = v_color;
}
`,
	},
	Textured: {
		name: "Textured",
		vertex: `
layout(location = 0) in vec3 a_position;
layout(location = 1) in vec4 a_color;
layout(location = 2) in vec2 a_uv;

uniform mat4 u_vp;
uniform mat4 u_transform;

out vec4 v_color;
out vec2 v_uv;

void main() {
	v_color = a_color;
	v_uv = a_uv;
	gl_Position = u_vp * u_transform * vec4(a_position, 1.0);
}
`,
		fragment: alphaTest + `
in vec4 v_color;
in vec2 v_uv;

uniform sampler2D u_tex0;
uniform vec4 u_clr0;

out vec4 fragColor;

void main() {
	vec4 color = v_color * u_clr0 * texture(u_tex0, v_uv);
	if (color.a <= u_alphaRef) {
		discard;
	}
	fragColor = color;
}
`,
	},
}

var modelSources = [TotalModels]struct {
	name             string
	vertex, fragment string
}{
	Unlit: {
		name:   "Unlit",
		vertex: meshVertex,
		fragment: alphaTest + `
in vec2 v_uv;

#ifdef USE_DIFFUSE_MAP
uniform sampler2D u_tex0;
#endif

out vec4 fragColor;

void main() {
	vec4 color = vec4(1.0);
#ifdef USE_DIFFUSE_MAP
	color = texture(u_tex0, v_uv);
#endif
	if (color.a <= u_alphaRef) {
		discard;
	}
	fragColor = color;
}
`,
	},
	Ambient: {
		name:   "Ambient",
		vertex: meshVertex,
		fragment: alphaTest + `
in vec2 v_uv;

uniform vec4 u_color;
uniform vec4 u_clr0;

#ifdef USE_DIFFUSE_MAP
uniform sampler2D u_tex0;
#endif

out vec4 fragColor;

void main() {
	vec4 diffuse = u_clr0;
#ifdef USE_DIFFUSE_MAP
	diffuse *= texture(u_tex0, v_uv);
#endif
	if (diffuse.a <= u_alphaRef) {
		discard;
	}
	fragColor = vec4(diffuse.rgb * u_color.rgb, diffuse.a);
}
`,
	},
	Phong: {
		name:   "Phong",
		vertex: meshVertex,
		fragment: alphaTest + `
in vec3 v_normal;
in vec3 v_worldPos;
in vec2 v_uv;

uniform vec4 u_clr0;
uniform vec4 u_lightPosition;
uniform vec4 u_lightColor;

#ifdef USE_DIFFUSE_MAP
uniform sampler2D u_tex0;
#endif

out vec4 fragColor;

void main() {
	vec4 diffuse = u_clr0;
#ifdef USE_DIFFUSE_MAP
	diffuse *= texture(u_tex0, v_uv);
#endif
	if (diffuse.a <= u_alphaRef) {
		discard;
	}

	vec3 toLight = u_lightPosition.xyz - v_worldPos;
	float dist = length(toLight);
	float attenuation = clamp(1.0 - dist / max(u_lightPosition.w, 0.0001), 0.0, 1.0);
	float ndotl = max(dot(normalize(v_normal), toLight / max(dist, 0.0001)), 0.0);
	vec3 lit = diffuse.rgb * u_lightColor.rgb * u_lightColor.a * ndotl * attenuation;
	fragColor = vec4(lit, diffuse.a);
}
`,
	},
}
