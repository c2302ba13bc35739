package gift

// Test-only access to unexported identifiers for the external test package.

type ServiceImpl = service
