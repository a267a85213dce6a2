package modkit

import "aidetector/internal/modkit/module"

// Module is what every service module returns from New
type Module = module.Module

// Builder constructs a Module from shared deps and options
type Builder func(Deps, ...Option) Module
