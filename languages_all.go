package main

// Import all language packages to register them
import (
	_ "github.com/ciarant/structurizr-completion/languages/kotlin"
	_ "github.com/ciarant/structurizr-completion/languages/structurizr"
)
