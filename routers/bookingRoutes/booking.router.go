package bookingRoutes

import (
	bookingController "drivingschool/controllers/booking"
	"drivingschool/middleware"
	"drivingschool/models"
	bookingValidator "drivingschool/validators/booking"

	"github.com/gofiber/fiber/v2"
)

func SetupBookingRoutes(api fiber.Router) {
	bookingGroup := api.Group("/bookings")

	bookingGroup.Get("/", middleware.Protect(), bookingValidator.BookingList(), bookingController.GetBookings)
	bookingGroup.Post("/", middleware.Protect(models.RoleStudent, models.RoleAdmin), bookingValidator.CreateBooking(), bookingController.CreateBooking)
	bookingGroup.Put("/cancel/:id", middleware.Protect(), bookingValidator.BookingID(), bookingController.CancelBooking)
	bookingGroup.Put("/:id", middleware.Protect(), bookingValidator.BookingID(), bookingValidator.UpdateBooking(), bookingController.UpdateBooking)
	bookingGroup.Delete("/:id", middleware.Protect(models.RoleAdmin), bookingValidator.BookingID(), bookingController.DeleteBooking)
}
