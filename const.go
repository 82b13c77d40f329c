// Copyright (c) 2025 hitoshi.mukai.b@gmail.com. All rights reserved.
// You are free to use this source code for any purpose. The copyright remains with the author.
// The author accepts no liability for any damages arising from the use of this source code.
//
// Last modified: 2025.10.12
//

package geocorr

const (
	PI     = 3.1415926535897932  // Pi
	C      = 2.99792458e8        // Speed of light [m/s]
	Re     = 6378137.0           // Earth's radius (WGS84) [m]
	Fe     = 1.0 / 298.257223563 // Earth's flattening
	AU     = 149597870.700       // Astronomical unit [km]
	D2R    = PI / 180.0          // Degree to radian
	R2D    = 180.0 / PI          // Radian to degree
	AS2R   = D2R / 3600.0        // Arcsec to radian
	MAS2R  = AS2R / 1e3          // Milli-arcsec to radian
	TURNAS = 1296000.0           // Arcsec in a full circle

	J2000   = 2451545.0 // Julian date of J2000.0 (TT)
	MJD0    = 2400000.5 // Julian date of MJD 0
	MJDGPS0 = 44244.0   // MJD of GPS epoch 1980/1/6
	DJC     = 36525.0   // Days per Julian century
	DAYSEC  = 86400.0   // Seconds per day

	GPST2TAI = 19.0   // TAI - GPST [s]
	TT2TAI   = 32.184 // TT - TAI [s]

	OMGE   = 7.292115e-5    // Earth's rotation rate [rad/s]
	GME    = 3.986004418e14 // Earth's gravitational constant [m^3/s^2]
	REIERS = 6378136.6      // Equatorial radius (IERS 2010) [m]

	MJDPOLE = 55197.0 // Mean pole model branch (2010.0)
)
