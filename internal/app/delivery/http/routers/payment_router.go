package routers

import (
	"clinic-service/internal/app/delivery/http/controllers"
	"clinic-service/internal/app/delivery/http/middlewares"
	"clinic-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
)

func attachPaymentRoutes(router chi.Router, middlewares *middlewares.Middlewares, paymentController *controllers.PaymentController) {
	// Called by the gateway without a bearer token.
	router.With(middlewares.CallbackToken).Post("/mpesa/callback", paymentController.MpesaCallback)

	router.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticate)

		r.With(middlewares.RequirePermission(constvars.OperationPaymentCreate)).Post("/", paymentController.InitiatePayment)
		r.With(middlewares.RequirePermission(constvars.OperationPaymentCreate)).Post("/mpesa/stk-push", paymentController.InitiateSTKPush)
		r.With(middlewares.RequirePermission(constvars.OperationPaymentCreate)).Post("/cash", paymentController.RecordCashPayment)
		r.With(middlewares.RequirePermission(constvars.OperationPaymentRead)).Get("/", paymentController.ListPayments)
		r.With(middlewares.RequirePermission(constvars.OperationPaymentRead)).Get("/{id}", paymentController.GetPayment)
	})
}
