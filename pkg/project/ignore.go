package project

// RootGitignore is written to the project root
const RootGitignore = `
*.iml
.gradle
/local.properties
/.idea/
.DS_Store
/build
/captures
.externalNativeBuild
.cxx
local.properties
`

// AppGitignore is written to the app module
const AppGitignore = "/build\n"
