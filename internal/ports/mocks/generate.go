//go:generate mockgen -source=../catalog.go         -destination=./mock_catalog.go         -package=mocks
//go:generate mockgen -source=../batch_processor.go -destination=./mock_batch_processor.go -package=mocks
//go:generate mockgen -source=../logger.go          -destination=./mock_logger.go          -package=mocks

package mocks
