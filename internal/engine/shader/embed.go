package shader

import _ "embed"

// ToonVertexShader inflates vertices along their normals in edge mode and
// passes lighting inputs through otherwise.
//
//go:embed shaders/toon.vert
var ToonVertexShader string

// ToonFragmentShader quantises diffuse lighting into gradient bands, or
// emits flat ink in edge mode.
//
//go:embed shaders/toon.frag
var ToonFragmentShader string
