package workflow_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/mmdatafocus/autoservice_backend/config"
	"github.com/mmdatafocus/autoservice_backend/models"
	"github.com/mmdatafocus/autoservice_backend/utils"
	"github.com/mmdatafocus/autoservice_backend/workflow"
	"github.com/shopspring/decimal"
)

// Regression: the three reconciliation cases over a sequence of RO-billing
// uploads. New file inserts everything, an identical re-upload refreshes
// everything, and a partial overlap splits into update + insert while
// untouched records keep their prior state.
func TestIngestRows_ThreeCaseSequence(t *testing.T) {
	ctx, businessID := setupIntegration(t)

	fileA := []map[string]string{
		{"RO No": "100", "Customer": "Ko Ko", "Total": "500"},
		{"RO No": "101", "Customer": "Ma Hla", "Total": "750"},
		{"RO No": "102", "Customer": "U Aung", "Total": "900"},
	}

	uploadA, err := workflow.IngestRows(ctx, businessID, models.FileTypeROBilling, "a.xlsx", "test", fileA)
	if err != nil {
		t.Fatalf("upload A: %v", err)
	}
	if uploadA.ReconcileCase != models.ReconcileCaseNewFile {
		t.Errorf("upload A case = %s, want new_file", uploadA.ReconcileCase)
	}
	if uploadA.InsertedCount != 3 || uploadA.UpdatedCount != 0 {
		t.Errorf("upload A counts: inserted=%d updated=%d", uploadA.InsertedCount, uploadA.UpdatedCount)
	}

	// Identical file again: whole batch is a refresh.
	uploadA2, err := workflow.IngestRows(ctx, businessID, models.FileTypeROBilling, "a.xlsx", "test", fileA)
	if err != nil {
		t.Fatalf("upload A2: %v", err)
	}
	if uploadA2.ReconcileCase != models.ReconcileCaseDuplicateFile {
		t.Errorf("upload A2 case = %s, want duplicate_file", uploadA2.ReconcileCase)
	}
	if uploadA2.InsertedCount != 0 || uploadA2.UpdatedCount != 3 {
		t.Errorf("upload A2 counts: inserted=%d updated=%d", uploadA2.InsertedCount, uploadA2.UpdatedCount)
	}

	fileB := []map[string]string{
		{"RO No": "101", "Customer": "Ma Hla", "Total": "800"},
		{"RO No": "103", "Customer": "Daw Mya", "Total": "450"},
	}
	uploadB, err := workflow.IngestRows(ctx, businessID, models.FileTypeROBilling, "b.xlsx", "test", fileB)
	if err != nil {
		t.Fatalf("upload B: %v", err)
	}
	if uploadB.ReconcileCase != models.ReconcileCaseMixedFile {
		t.Errorf("upload B case = %s, want mixed_file", uploadB.ReconcileCase)
	}
	if uploadB.InsertedCount != 1 || uploadB.UpdatedCount != 1 {
		t.Errorf("upload B counts: inserted=%d updated=%d", uploadB.InsertedCount, uploadB.UpdatedCount)
	}

	db := config.GetDB()

	var updated models.ROBilling
	if err := db.WithContext(ctx).Where("business_id = ? AND ro_number = ?", businessID, "101").Take(&updated).Error; err != nil {
		t.Fatalf("fetch 101: %v", err)
	}
	if !updated.TotalAmount.Equal(decimal.RequireFromString("800")) {
		t.Errorf("RO 101 total = %s, want 800", updated.TotalAmount)
	}
	if updated.UploadedFileId != uploadB.ID {
		t.Errorf("RO 101 uploaded_file_id = %d, want rebound to %d", updated.UploadedFileId, uploadB.ID)
	}

	var untouched models.ROBilling
	if err := db.WithContext(ctx).Where("business_id = ? AND ro_number = ?", businessID, "102").Take(&untouched).Error; err != nil {
		t.Fatalf("fetch 102: %v", err)
	}
	if !untouched.TotalAmount.Equal(decimal.RequireFromString("900")) {
		t.Errorf("RO 102 total = %s, want untouched 900", untouched.TotalAmount)
	}
	if untouched.UploadedFileId != uploadA2.ID {
		t.Errorf("RO 102 uploaded_file_id = %d, want %d from the last full refresh", untouched.UploadedFileId, uploadA2.ID)
	}

	var total int64
	if err := db.WithContext(ctx).Model(&models.ROBilling{}).Where("business_id = ?", businessID).Count(&total).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if total != 4 {
		t.Errorf("record count = %d, want 4 (100, 101, 102, 103)", total)
	}
}

// Regression: one invalid row rejects the whole batch and nothing is
// persisted; the attempt is recorded as a failed upload.
func TestIngestRows_ValidationFailureWritesNothing(t *testing.T) {
	ctx, businessID := setupIntegration(t)

	rows := []map[string]string{
		{"RO No": "700", "VIN": "MA3ERLF1S00123456"},
		{"RO No": "701", "VIN": ""},
	}
	uploadedFile, err := workflow.IngestRows(ctx, businessID, models.FileTypeRepairOrderList, "ro.xlsx", "test", rows)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if uploadedFile == nil || uploadedFile.Status != models.UploadStatusFailed {
		t.Fatalf("uploaded file = %+v, want failed status", uploadedFile)
	}
	if uploadedFile.ErrorMessage == "" {
		t.Error("failed upload should record the cause")
	}

	db := config.GetDB()
	var count int64
	if err := db.WithContext(ctx).Model(&models.RepairOrder{}).Where("business_id = ?", businessID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Errorf("repair order count = %d, want 0 (batch must not be half-applied)", count)
	}
}

// End to end: bookings classified against repair-order VINs after both
// datasets are uploaded.
func TestPerformVINMatching_EndToEnd(t *testing.T) {
	ctx, businessID := setupIntegration(t)

	bookingRows := []map[string]string{
		{"Reg No": "1J-1111", "VIN": "ma3erlf1s00123456", "Booking Date": "01/01/2030", "SA": "U Aung", "Work Type": "Service"},
		{"Reg No": "2K-2222", "VIN": "MA3ERLF1S00999999", "Booking Date": "01/01/2000", "SA": "U Aung", "Work Type": "Repair"},
	}
	if _, err := workflow.IngestRows(ctx, businessID, models.FileTypeBookingList, "bookings.xlsx", "test", bookingRows); err != nil {
		t.Fatalf("booking upload: %v", err)
	}

	repairOrderRows := []map[string]string{
		{"RO No": "900", "VIN": "MA3ERLF1S00123456"},
	}
	if _, err := workflow.IngestRows(ctx, businessID, models.FileTypeRepairOrderList, "ro.xlsx", "test", repairOrderRows); err != nil {
		t.Fatalf("repair order upload: %v", err)
	}

	result := workflow.PerformVINMatching(ctx, businessID)
	if result.TotalBookings != 2 {
		t.Fatalf("TotalBookings = %d, want 2", result.TotalBookings)
	}
	if result.MatchedVINs != 1 || result.UnmatchedVINs != 1 {
		t.Errorf("matched=%d unmatched=%d", result.MatchedVINs, result.UnmatchedVINs)
	}
	if result.StatusSummary[models.BookingStatusConverted] != 1 {
		t.Errorf("StatusSummary = %v, want one Converted", result.StatusSummary)
	}
	if result.StatusSummary[models.BookingStatusProcessing] != 1 {
		t.Errorf("StatusSummary = %v, want one Booking Processing for the past date", result.StatusSummary)
	}
	if result.AdvisorBreakdown["U Aung"]["Service"][models.BookingStatusConverted] != 1 {
		t.Errorf("AdvisorBreakdown = %v", result.AdvisorBreakdown)
	}
}

func setupIntegration(t *testing.T) (context.Context, string) {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires docker)")
	}

	ctx := context.Background()

	redisName, redisPort := startRedisContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(redisName) })

	mysqlName, mysqlPort := startMySQLContainer(t)
	t.Cleanup(func() { _ = dockerRmForce(mysqlName) })

	t.Setenv("REDIS_ADDRESS", fmt.Sprintf("127.0.0.1:%s", redisPort))
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "testpw")
	t.Setenv("DB_HOST", "127.0.0.1")
	t.Setenv("DB_PORT", mysqlPort)
	t.Setenv("DB_NAME", "autoservice_test")

	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()
	models.MigrateTable()

	ctx = utils.SetUserIdInContext(ctx, 1)
	ctx = utils.SetUserNameInContext(ctx, "Test")
	ctx = utils.SetUsernameInContext(ctx, "test@local")

	biz, err := models.CreateBusiness(ctx, &models.NewBusiness{
		Name:  "Test Service Center",
		Email: "owner@test.local",
	})
	if err != nil {
		t.Fatalf("CreateBusiness: %v", err)
	}
	businessID := biz.ID.String()
	ctx = utils.SetBusinessIdInContext(ctx, businessID)
	return ctx, businessID
}

func startRedisContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("autoservice-test-redis-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-p", "127.0.0.1:0:6379",
		"redis:7-alpine",
	)
	if err != nil {
		t.Fatalf("start redis container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "6379/tcp")
	if err != nil {
		t.Fatalf("redis docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(60 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "redis-cli", "ping")
		if err == nil {
			return name, port
		}
		time.Sleep(250 * time.Millisecond)
	}
	t.Fatalf("redis did not become ready")
	return "", ""
}

func startMySQLContainer(t *testing.T) (containerName, hostPort string) {
	t.Helper()
	name := fmt.Sprintf("autoservice-test-mysql-%d", time.Now().UnixNano())
	out, err := dockerRun(
		"run", "-d", "--name", name,
		"-e", "MYSQL_ROOT_PASSWORD=testpw",
		"-e", "MYSQL_DATABASE=autoservice_test",
		"-p", "127.0.0.1:0:3306",
		"mysql:8.0",
		"--default-authentication-plugin=mysql_native_password",
	)
	if err != nil {
		t.Fatalf("start mysql container: %v\n%s", err, out)
	}
	port, err := dockerHostPort(name, "3306/tcp")
	if err != nil {
		t.Fatalf("mysql docker port: %v", err)
	}
	// wait until ready
	deadline := time.Now().Add(120 * time.Second)
	for time.Now().Before(deadline) {
		_, err := dockerRun("exec", name, "mysqladmin", "ping", "-h", "127.0.0.1", "-ptestpw", "--silent")
		if err == nil {
			return name, port
		}
		time.Sleep(500 * time.Millisecond)
	}
	t.Fatalf("mysql did not become ready")
	return "", ""
}

func dockerHostPort(container, portProto string) (string, error) {
	out, err := dockerRun("port", container, portProto)
	if err != nil {
		return "", fmt.Errorf("docker port: %w: %s", err, out)
	}
	// Example: "127.0.0.1:49154\n"
	re := regexp.MustCompile(`:(\d+)`)
	m := re.FindStringSubmatch(out)
	if len(m) != 2 {
		return "", fmt.Errorf("unexpected docker port output: %q", out)
	}
	return m[1], nil
}

func dockerRmForce(container string) error {
	if strings.TrimSpace(container) == "" {
		return nil
	}
	_, err := dockerRun("rm", "-f", container)
	return err
}

func dockerRun(args ...string) (string, error) {
	cmd := exec.Command("docker", args...)
	b, err := cmd.CombinedOutput()
	return string(b), err
}
