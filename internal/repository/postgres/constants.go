package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = time.Minute
	poolMaxConnLifetime   = time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound        = "user not found"
	errOrderNotFound       = "order not found"
	errOrderStatusConflict = "order status has changed"

	errFailedParseDatabaseConfigFmt  = "failed to parse database config: %w"
	errFailedCreateConnectionPoolFmt = "failed to create connection pool: %w"
	errFailedPingDatabaseFmt         = "failed to ping database: %w"

	errFailedCreateUserFmt = "failed to create user: %w"
	errFailedGetUserFmt    = "failed to get user: %w"
	errFailedUpdateUserFmt = "failed to update user: %w"
	errFailedDeleteUserFmt = "failed to delete user: %w"

	errFailedCreateOrderFmt       = "failed to create order: %w"
	errFailedGetOrderFmt          = "failed to get order: %w"
	errFailedListOrdersFmt        = "failed to list orders: %w"
	errFailedScanOrderFmt         = "failed to scan order: %w"
	errIterateOrdersFmt           = "error iterating orders: %w"
	errFailedUpdateOrderStatusFmt = "failed to update order status: %w"
	errFailedDeleteOrderFmt       = "failed to delete order: %w"
)

var (
	errFailedParseDatabaseConfig  = func(err error) error { return fmt.Errorf(errFailedParseDatabaseConfigFmt, err) }
	errFailedCreateConnectionPool = func(err error) error { return fmt.Errorf(errFailedCreateConnectionPoolFmt, err) }
	errFailedPingDatabase         = func(err error) error { return fmt.Errorf(errFailedPingDatabaseFmt, err) }
	errFailedCreateUser           = func(err error) error { return fmt.Errorf(errFailedCreateUserFmt, err) }
	errFailedGetUser              = func(err error) error { return fmt.Errorf(errFailedGetUserFmt, err) }
	errFailedUpdateUser           = func(err error) error { return fmt.Errorf(errFailedUpdateUserFmt, err) }
	errFailedDeleteUser           = func(err error) error { return fmt.Errorf(errFailedDeleteUserFmt, err) }
	errFailedCreateOrder          = func(err error) error { return fmt.Errorf(errFailedCreateOrderFmt, err) }
	errFailedGetOrder             = func(err error) error { return fmt.Errorf(errFailedGetOrderFmt, err) }
	errFailedListOrders           = func(err error) error { return fmt.Errorf(errFailedListOrdersFmt, err) }
	errFailedScanOrder            = func(err error) error { return fmt.Errorf(errFailedScanOrderFmt, err) }
	errIterateOrders              = func(err error) error { return fmt.Errorf(errIterateOrdersFmt, err) }
	errFailedUpdateOrderStatus    = func(err error) error { return fmt.Errorf(errFailedUpdateOrderStatusFmt, err) }
	errFailedDeleteOrder          = func(err error) error { return fmt.Errorf(errFailedDeleteOrderFmt, err) }
)
