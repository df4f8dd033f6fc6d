package router

import (
	"github.com/gin-gonic/gin"
	"github.com/rentledger/backend/internal/interfaces/http/handler"
	"github.com/rentledger/backend/internal/interfaces/http/middleware"
)

// Handlers bundles every API handler mounted by RegisterAPI
type Handlers struct {
	Lease     *handler.LeaseHandler
	Charge    *handler.ChargeHandler
	Payment   *handler.PaymentHandler
	Portfolio *handler.PortfolioHandler
	Property  *handler.PropertyHandler
	Tenant    *handler.TenantHandler
	Cron      *handler.CronHandler
	System    *handler.SystemHandler
}

// RegisterAPI mounts /health on the engine and the resource routes under
// /api/v1. The cron group only answers callers presenting cronSecret.
func RegisterAPI(engine *gin.Engine, h Handlers, cronSecret string) *Router {
	engine.GET("/health", h.System.Health)

	leases := NewDomainGroup("leases", "/leases").
		POST("", h.Lease.Create).
		GET("", h.Lease.List).
		GET("/:id", h.Lease.Get).
		POST("/:id/end", h.Lease.End).
		GET("/:id/ledger", h.Lease.Ledger).
		POST("/:id/charges", h.Charge.Issue).
		POST("/:id/payments", h.Payment.Record)

	charges := NewDomainGroup("charges", "/charges").
		GET("/:id", h.Charge.Get).
		POST("/:id/void", h.Charge.Void)

	payments := NewDomainGroup("payments", "/payments").
		GET("/:id", h.Payment.Get).
		POST("/:id/refund", h.Payment.Refund).
		POST("/:id/allocations", h.Payment.Allocate)

	metrics := NewDomainGroup("metrics", "/metrics").
		GET("/portfolio", h.Portfolio.GetMetrics)

	properties := NewDomainGroup("properties", "/properties").
		POST("", h.Property.Create).
		GET("", h.Property.List).
		GET("/:id", h.Property.Get).
		POST("/:id/units", h.Property.CreateUnit).
		GET("/:id/units", h.Property.ListUnits)

	tenants := NewDomainGroup("tenants", "/tenants").
		POST("", h.Tenant.Create).
		GET("", h.Tenant.List).
		GET("/:id", h.Tenant.Get)

	// Hosted cron callers send GET; manual runs POST.
	cron := NewDomainGroup("cron", "/cron").
		Use(middleware.CronAuth(cronSecret)).
		GET("/generate-rent", h.Cron.GenerateRent).
		POST("/generate-rent", h.Cron.GenerateRent)

	system := NewDomainGroup("system", "/system").
		GET("/info", h.System.GetSystemInfo).
		GET("/ping", h.System.Ping)

	r := NewRouter(engine).
		Register(leases).
		Register(charges).
		Register(payments).
		Register(metrics).
		Register(properties).
		Register(tenants).
		Register(cron).
		Register(system)
	r.Setup()
	return r
}
