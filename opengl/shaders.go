//go:build !nogl

package opengl

// Cells are points expanded into discs of one diameter.
const cellVert = `#version 330 core

uniform vec2 vp[2];

layout(location = 0) in vec2 pos;
layout(location = 1) in vec4 color;

out vec4 vcolor;

void main() {
	gl_Position = vec4(2 * (pos - vp[0]) / (vp[1] - vp[0]) - 1, 0, 1);
	vcolor = color;
}
`

const cellGeom = `#version 330 core

uniform vec2 vp[2];

layout(points) in;
layout(triangle_strip, max_vertices = 4) out;

in vec4 vcolor[];

out vec4 gcolor;
out vec2 corner;

void main() {
	vec2 r = 1 / (vp[1] - vp[0]); // half a diameter in clip space
	for (int i = 0; i < 4; i++) {
		corner = vec2(i % 2, i / 2) * 2 - 1;
		gl_Position = gl_in[0].gl_Position + vec4(corner * r, 0, 0);
		gcolor = vcolor[0];
		EmitVertex();
	}
	EndPrimitive();
}
`

const cellFrag = `#version 330 core

in vec4 gcolor;
in vec2 corner;

out vec4 color;

void main() {
	float r = length(corner);
	if (r > 1) {
		discard;
	}
	color = vec4(gcolor.rgb * (1 - 0.3 * smoothstep(0.85, 1, r)), gcolor.a);
}
`

const lineVert = `#version 330 core

uniform vec2 vp[2];

layout(location = 0) in vec2 pos;
layout(location = 1) in vec4 color;

out vec4 vcolor;

void main() {
	gl_Position = vec4(2 * (pos - vp[0]) / (vp[1] - vp[0]) - 1, 0, 1);
	vcolor = color;
}
`

const lineFrag = `#version 330 core

in vec4 vcolor;

out vec4 color;

void main() {
	color = vcolor;
}
`
