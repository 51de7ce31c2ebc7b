package main

import (
	"github.com/gin-gonic/gin"
	"keephy.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	userHandler         *handlers.UserHandler
	categoryHandler     *handlers.CategoryHandler
	businessHandler     *handlers.BusinessHandler
	franchiseHandler    *handlers.FranchiseHandler
	formHandler         *handlers.FormHandler
	planHandler         *handlers.PlanHandler
	subscriptionHandler *handlers.SubscriptionHandler

	authMiddleware        gin.HandlerFunc
	adminMiddleware       gin.HandlerFunc
	rateLimitMiddleware   gin.HandlerFunc
	idempotencyMiddleware gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	auth := d.authMiddleware
	limited := d.rateLimitMiddleware

	user := v1.Group("/user")
	{
		user.POST("/login", limited, d.userHandler.Login)
		user.POST("/signUp", limited, d.userHandler.SignUp)
		user.POST("/forgot-password", limited, d.userHandler.ForgotPassword)
		user.POST("/verifyOTP", limited, d.userHandler.VerifyOTP)
		user.POST("/resetPassword", limited, d.userHandler.ResetPassword)
		user.POST("/google-login", limited, d.userHandler.GoogleLogin)
		user.POST("/logout", d.userHandler.Logout)

		user.POST("/subscription", auth, d.userHandler.SetSubscriptionWindow)
		user.POST("/addCard", auth, d.userHandler.AddCard)
		user.GET("/me", auth, d.userHandler.Me)
	}

	business := v1.Group("/business")
	{
		business.POST("/createReview", limited, d.businessHandler.CreateReview)

		owned := business.Group("", auth)
		owned.DELETE("/deleteBusiness/:id", d.businessHandler.DeleteBusiness)
		owned.GET("", d.businessHandler.ListBusinesses)
		owned.POST("", d.businessHandler.CreateBusiness)
		owned.GET("/:id", d.businessHandler.GetBusiness)
		owned.PUT("/:id", d.businessHandler.UpdateBusiness)
		owned.POST("/:id/forms", d.businessHandler.AttachForms)
		owned.PUT("/:id/forms/:formId/activate", d.businessHandler.ActivateForm)
	}

	franchise := v1.Group("/franchise", auth)
	{
		franchise.GET("/getFranchiseByBusinessId/:id", d.franchiseHandler.ListByBusiness)
		franchise.DELETE("/deleteFranchise/:id", d.franchiseHandler.DeleteFranchise)
		franchise.GET("", d.franchiseHandler.ListFranchises)
		franchise.POST("", d.franchiseHandler.CreateFranchise)
		franchise.GET("/:id", d.franchiseHandler.GetFranchise)
		franchise.PUT("/:id", d.franchiseHandler.UpdateFranchise)
		franchise.POST("/:id/forms", d.franchiseHandler.AttachForms)
		franchise.PUT("/:id/forms/:formId/activate", d.franchiseHandler.ActivateForm)
	}

	category := v1.Group("/category")
	{
		category.GET("", d.categoryHandler.ListCategories)
		category.POST("", d.categoryHandler.CreateCategories)
		category.GET("/:id", d.categoryHandler.GetCategory)
		category.GET("/:id/subcategories", d.categoryHandler.ListSubcategories)
		category.DELETE("/:id", auth, d.adminMiddleware, d.categoryHandler.DeleteCategory)
	}

	typeForm := v1.Group("/typeForm")
	{
		typeForm.POST("/addFormSubmission", limited, d.formHandler.AddSubmission)
		typeForm.GET("/getFormByCode/:code", limited, d.formHandler.GetFormByCode)

		owned := typeForm.Group("", auth)
		owned.GET("", d.formHandler.ListForms)
		owned.POST("/addTypeForm", d.formHandler.CreateForm)
		owned.GET("/getFormByBusinessId/:id", d.formHandler.ListByBusiness)
		owned.GET("/getFormByLocationId/:id", d.formHandler.ListByLocation)
		owned.GET("/getFormById/:id", d.formHandler.GetForm)
		owned.GET("/getFormSubmissionByFormId/:id", d.formHandler.ListSubmissions)
		owned.DELETE("/deleteForm/:id", d.formHandler.DeleteForm)
		owned.PUT("/updateFormById/:id", d.formHandler.UpdateForm)
	}

	plan := v1.Group("/plan")
	{
		plan.GET("", d.planHandler.ListPlans)
		plan.GET("/:id", d.planHandler.GetPlan)
		plan.POST("", auth, d.planHandler.CreatePlan)
		plan.PATCH("/:id", auth, d.planHandler.UpdatePlan)
		plan.DELETE("/:id", auth, d.planHandler.DeletePlan)
	}

	subscription := v1.Group("/Subscription", auth)
	{
		subscription.GET("/user-subscription", d.subscriptionHandler.ListActive)
		subscription.POST("", d.idempotencyMiddleware, d.subscriptionHandler.CreateSubscription)
		subscription.POST("/auto-renew", d.subscriptionHandler.AutoRenew)
		subscription.DELETE("/cancel-subscription/:subscriptionId", d.subscriptionHandler.Cancel)
	}
}
