package mocks

//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Tx --dir ../domain/ingestion --output domain/ingestion --outpkg ingestionmock --filename tx_mock.go
//go:generate go run github.com/vektra/mockery/v2@v2.53.5 --name Repository --dir ../domain/report --output domain/report --outpkg reportmock --filename repository_mock.go
