package mocks

//go:generate mockery --name SnapshotStore --srcpkg github.com/aevon-lab/primstats/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter
