package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts its routes onto the versioned API group
type RouteRegistrar interface {
	RegisterRoutes(api *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion overrides the "v1" prefix segment
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) { r.apiVersion = version }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a registrar; nothing is mounted until Setup
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every queued registrar in registration order
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup is the route table of one resource (leases, charges, ...).
// Middleware added with Use applies to this group only.
type DomainGroup struct {
	name   string
	prefix string
	guards gin.HandlersChain
	routes []endpoint
}

type endpoint struct {
	method string
	path   string
	chain  gin.HandlersChain
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use appends middleware run ahead of every route in the group
func (g *DomainGroup) Use(guards ...gin.HandlerFunc) *DomainGroup {
	g.guards = append(g.guards, guards...)
	return g
}

func (g *DomainGroup) Handle(method, path string, chain ...gin.HandlerFunc) *DomainGroup {
	g.routes = append(g.routes, endpoint{method: method, path: path, chain: chain})
	return g
}

func (g *DomainGroup) GET(path string, chain ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodGet, path, chain...)
}

func (g *DomainGroup) POST(path string, chain ...gin.HandlerFunc) *DomainGroup {
	return g.Handle(http.MethodPost, path, chain...)
}

// RegisterRoutes implements RouteRegistrar
func (g *DomainGroup) RegisterRoutes(api *gin.RouterGroup) {
	rg := api.Group(g.prefix, g.guards...)
	for _, e := range g.routes {
		rg.Handle(e.method, e.path, e.chain...)
	}
}

func (g *DomainGroup) Name() string   { return g.name }
func (g *DomainGroup) Prefix() string { return g.prefix }
