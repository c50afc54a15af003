package controllers

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/pellerin-apps/detailing-api/models"
	"github.com/pellerin-apps/detailing-api/permissions"
)

func TestScheduleAppointment(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")
	seedTenant(t, db, "org_beta")

	client := seedClient(t, db, "org_alpha", "Jordan Price")
	vehicle := seedVehicle(t, db, "org_alpha", client.ID, models.SizeSmall)
	estimate := models.Estimate{
		TenantID:   "org_alpha",
		ClientID:   client.ID,
		VehicleID:  vehicle.ID,
		Services:   []string{"wash"},
		TotalPrice: 50,
		Status:     models.EstimateApproved,
	}
	if err := db.Create(&estimate).Error; err != nil {
		t.Fatalf("Failed to seed estimate: %v", err)
	}

	controller := NewAppointmentController(db)
	start := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	t.Run("books a slot with the fixed duration", func(t *testing.T) {
		router := setupTestRouter()
		router.POST("/appointments", mockAuthMiddleware(testUser("org_alpha", permissions.RoleMember), "mock-token"), controller.ScheduleAppointment)

		w, response := performJSON(t, router, http.MethodPost, "/appointments", map[string]interface{}{
			"estimate_id": estimate.ID,
			"start_time":  start.Format(time.RFC3339),
		})

		assert.Equal(t, http.StatusCreated, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "scheduled", data["status"])
		assert.Equal(t, false, data["deposit_paid"])

		var appointment models.Appointment
		assert.NoError(t, db.First(&appointment, "id = ?", data["id"]).Error)
		assert.Equal(t, appointment.StartTime.Add(models.AppointmentDuration), appointment.EndTime)
	})

	t.Run("missing estimate", func(t *testing.T) {
		router := setupTestRouter()
		router.POST("/appointments", mockAuthMiddleware(testUser("org_alpha", permissions.RoleMember), "mock-token"), controller.ScheduleAppointment)

		w, response := performJSON(t, router, http.MethodPost, "/appointments", map[string]interface{}{
			"estimate_id": "nope",
			"start_time":  start.Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
		assertErrorCode(t, response, "ESTIMATE_NOT_FOUND")
	})

	t.Run("another tenant's estimate is forbidden and writes nothing", func(t *testing.T) {
		var before int64
		db.Model(&models.Appointment{}).Count(&before)

		router := setupTestRouter()
		router.POST("/appointments", mockAuthMiddleware(testUser("org_beta", permissions.RoleMember), "mock-token"), controller.ScheduleAppointment)

		w, response := performJSON(t, router, http.MethodPost, "/appointments", map[string]interface{}{
			"estimate_id": estimate.ID,
			"start_time":  start.Format(time.RFC3339),
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
		assertErrorCode(t, response, "FORBIDDEN")

		var after int64
		db.Model(&models.Appointment{}).Count(&after)
		assert.Equal(t, before, after)
	})
}

func TestUpcomingAppointments(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")
	client := seedClient(t, db, "org_alpha", "Jordan Price")
	vehicle := seedVehicle(t, db, "org_alpha", client.ID, models.SizeSmall)
	estimate := models.Estimate{
		TenantID:   "org_alpha",
		ClientID:   client.ID,
		VehicleID:  vehicle.ID,
		Services:   []string{"wash"},
		TotalPrice: 50,
		Status:     models.EstimateApproved,
	}
	if err := db.Create(&estimate).Error; err != nil {
		t.Fatalf("Failed to seed estimate: %v", err)
	}

	now := time.Now()
	seedAppointment := func(tenantID string, start time.Time, status models.AppointmentStatus) {
		appointment := models.Appointment{
			TenantID:   tenantID,
			EstimateID: estimate.ID,
			StartTime:  start,
			EndTime:    start.Add(models.AppointmentDuration),
			Status:     status,
		}
		if err := db.Create(&appointment).Error; err != nil {
			t.Fatalf("Failed to seed appointment: %v", err)
		}
	}

	seedAppointment("org_alpha", now.Add(72*time.Hour), models.AppointmentScheduled)
	seedAppointment("org_alpha", now.Add(24*time.Hour), models.AppointmentScheduled)
	seedAppointment("org_alpha", now.Add(-24*time.Hour), models.AppointmentScheduled) // in the past
	seedAppointment("org_alpha", now.Add(48*time.Hour), models.AppointmentCancelled)  // not scheduled
	seedAppointment("org_beta", now.Add(24*time.Hour), models.AppointmentScheduled)   // other tenant

	controller := NewAppointmentController(db)
	router := setupTestRouter()
	router.GET("/appointments/upcoming", mockAuthMiddleware(testUser("org_alpha", permissions.RoleMember), "mock-token"), controller.UpcomingAppointments)

	w, response := performJSON(t, router, http.MethodGet, "/appointments/upcoming", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	data := response["data"].([]interface{})
	assert.Len(t, data, 2)

	// Soonest first
	first := data[0].(map[string]interface{})
	second := data[1].(map[string]interface{})
	firstStart, _ := time.Parse(time.RFC3339, first["start_time"].(string))
	secondStart, _ := time.Parse(time.RFC3339, second["start_time"].(string))
	assert.True(t, firstStart.Before(secondStart))
}

func TestUpdateAppointmentStatus(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")
	controller := NewAppointmentController(db)
	manager := testUser("org_alpha", permissions.RoleManager)

	newAppointment := func(status models.AppointmentStatus) *models.Appointment {
		appointment := &models.Appointment{
			TenantID:   "org_alpha",
			EstimateID: "est_1",
			StartTime:  time.Now().Add(24 * time.Hour),
			EndTime:    time.Now().Add(26 * time.Hour),
			Status:     status,
		}
		if err := db.Create(appointment).Error; err != nil {
			t.Fatalf("Failed to seed appointment: %v", err)
		}
		return appointment
	}

	t.Run("completes a scheduled appointment", func(t *testing.T) {
		appointment := newAppointment(models.AppointmentScheduled)
		router := setupTestRouter()
		router.PATCH("/appointments/:id/status", mockAuthMiddleware(manager, "mock-token"), controller.UpdateStatus)

		w, response := performJSON(t, router, http.MethodPatch, "/appointments/"+appointment.ID+"/status",
			map[string]interface{}{"status": "completed"})
		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, "completed", data["status"])
	})

	t.Run("cancelled appointments stay cancelled", func(t *testing.T) {
		appointment := newAppointment(models.AppointmentCancelled)
		router := setupTestRouter()
		router.PATCH("/appointments/:id/status", mockAuthMiddleware(manager, "mock-token"), controller.UpdateStatus)

		w, response := performJSON(t, router, http.MethodPatch, "/appointments/"+appointment.ID+"/status",
			map[string]interface{}{"status": "completed"})
		assert.Equal(t, http.StatusConflict, w.Code)
		assertErrorCode(t, response, "CONFLICT")
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		appointment := newAppointment(models.AppointmentScheduled)
		router := setupTestRouter()
		router.PATCH("/appointments/:id/status", mockAuthMiddleware(manager, "mock-token"), controller.UpdateStatus)

		w, response := performJSON(t, router, http.MethodPatch, "/appointments/"+appointment.ID+"/status",
			map[string]interface{}{"status": "scheduled"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assertErrorCode(t, response, "VALIDATION_ERROR")
	})
}

func TestMarkDepositPaid(t *testing.T) {
	db := setupTestDB(t)
	seedTenant(t, db, "org_alpha")
	controller := NewAppointmentController(db)

	appointment := models.Appointment{
		TenantID:   "org_alpha",
		EstimateID: "est_1",
		StartTime:  time.Now().Add(24 * time.Hour),
		EndTime:    time.Now().Add(26 * time.Hour),
		Status:     models.AppointmentScheduled,
	}
	if err := db.Create(&appointment).Error; err != nil {
		t.Fatalf("Failed to seed appointment: %v", err)
	}

	t.Run("records the deposit", func(t *testing.T) {
		router := setupTestRouter()
		router.PATCH("/appointments/:id/deposit", mockAuthMiddleware(testUser("org_alpha", permissions.RoleManager), "mock-token"), controller.MarkDepositPaid)

		w, response := performJSON(t, router, http.MethodPatch, "/appointments/"+appointment.ID+"/deposit", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		data := response["data"].(map[string]interface{})
		assert.Equal(t, true, data["deposit_paid"])
	})

	t.Run("another tenant's appointment looks missing", func(t *testing.T) {
		router := setupTestRouter()
		router.PATCH("/appointments/:id/deposit", mockAuthMiddleware(testUser("org_beta", permissions.RoleManager), "mock-token"), controller.MarkDepositPaid)

		w, response := performJSON(t, router, http.MethodPatch, "/appointments/"+appointment.ID+"/deposit", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assertErrorCode(t, response, "APPOINTMENT_NOT_FOUND")
	})
}
