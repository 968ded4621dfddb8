package modules

import "github.com/gin-gonic/gin"

// ResourceHandler is the handler set every back office collection exposes.
type ResourceHandler interface {
	Create(c *gin.Context)
	List(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
}

// ResourceModule mounts the five CRUD routes of one collection:
// POST and GET on /<path>, GET, PATCH and DELETE on /<path>/:id.
type ResourceModule struct {
	Path    string
	Handler ResourceHandler
	Guards  []gin.HandlerFunc
}

func NewResourceModule(path string, h ResourceHandler, guards ...gin.HandlerFunc) *ResourceModule {
	return &ResourceModule{Path: path, Handler: h, Guards: guards}
}

func (m *ResourceModule) Register(rg *gin.RouterGroup) {
	g := rg.Group("/"+m.Path, m.Guards...)
	{
		g.POST("", m.Handler.Create)
		g.GET("", m.Handler.List)
		g.GET("/:id", m.Handler.Get)
		g.PATCH("/:id", m.Handler.Update)
		g.DELETE("/:id", m.Handler.Delete)
	}
}
