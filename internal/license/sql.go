package license

const getLicenseSQL = `
SELECT
    license_key,
    expiry,
    active,
    machine_id
FROM license
WHERE license_key = ?
`

const listLicensesSQL = `
SELECT
    license_key,
    expiry,
    active,
    machine_id
FROM license
ORDER BY license_key
`

const createLicenseSQL = `
INSERT INTO license (
    license_key,
    expiry,
    active
) VALUES (?, ?, ?)
`

const updateActiveSQL = `
UPDATE license
SET active = ?
WHERE license_key = ?
`

// Conditional on machine_id still being NULL so that two concurrent first
// uses of the same key cannot both bind. The caller checks the affected
// row count to learn whether it won the race.
const bindMachineSQL = `
UPDATE license
SET machine_id = ?
WHERE license_key = ? AND machine_id IS NULL
`
